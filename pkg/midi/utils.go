package midi

// NoteEvent flattens a note on or note off channel event.
type NoteEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
	On       bool
}

// Note reports the note carried by e. A note on with velocity 0 has already
// been decoded as a note off.
func Note(e Event) (NoteEvent, bool) {
	ce, ok := e.(*ChannelEvent)
	if !ok {
		return NoteEvent{}, false
	}

	switch m := ce.Message.(type) {
	case NoteOn:
		return NoteEvent{Channel: ce.Channel, Note: m.Note, Velocity: m.Velocity, On: true}, true
	case NoteOff:
		return NoteEvent{Channel: ce.Channel, Note: m.Note, Velocity: m.Velocity}, true
	}
	return NoteEvent{}, false
}

// VelocityOffset returns the absolute input position of a note event's
// velocity byte, which is always its last byte.
func VelocityOffset(e Event) (int64, bool) {
	if _, ok := Note(e); !ok {
		return 0, false
	}
	t := e.Time()
	return t.Offset + int64(t.Size) - 1, true
}
