package midi

const beatsPerBar = 4

// QuarterPosition returns the quarter (0-3) of a 4/4 bar in which absTicks falls.
func QuarterPosition(absTicks uint64, ticksPerBeat uint16) int {
	if ticksPerBeat == 0 {
		return 0
	}
	return int(absTicks / uint64(ticksPerBeat) % beatsPerBar)
}

// Bar returns the zero-based 4/4 bar index of absTicks.
func Bar(absTicks uint64, ticksPerBeat uint16) uint64 {
	if ticksPerBeat == 0 {
		return 0
	}
	return absTicks / uint64(ticksPerBeat) / beatsPerBar
}
