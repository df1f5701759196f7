package midi

import "fmt"

// Timing is carried by every event.
type Timing struct {
	// DeltaTime is the number of ticks since the previous event of the same track.
	DeltaTime uint32
	// Offset is the absolute input position of the event's first byte.
	Offset int64
	// Size is the encoded length of the event, delta-time included.
	Size int
}

func (t Timing) Time() Timing { return t }

// Event is one of *MetaEvent, *ChannelEvent, *SysExEvent or *DividedSysExEvent.
type Event interface {
	Time() Timing
	isEvent()
}

type MetaEvent struct {
	Timing
	Meta Meta
}

type ChannelEvent struct {
	Timing
	Channel uint8
	Message ChannelMessage
}

// SysExEvent is introduced by 0xF0. Data excludes the length prefix.
type SysExEvent struct {
	Timing
	Data []byte
}

// DividedSysExEvent is introduced by 0xF7: a continuation packet or an escaped message.
type DividedSysExEvent struct {
	Timing
	Data []byte
}

func (*MetaEvent) isEvent()         {}
func (*ChannelEvent) isEvent()      {}
func (*SysExEvent) isEvent()        {}
func (*DividedSysExEvent) isEvent() {}

func (e *MetaEvent) String() string {
	return fmt.Sprintf("+%d meta %s %+v", e.DeltaTime, e.Meta.MetaType(), e.Meta)
}

func (e *ChannelEvent) String() string {
	return fmt.Sprintf("+%d ch%d %s %+v", e.DeltaTime, e.Channel, e.Message.Kind(), e.Message)
}

func (e *SysExEvent) String() string {
	return fmt.Sprintf("+%d sysEx % X", e.DeltaTime, e.Data)
}

func (e *DividedSysExEvent) String() string {
	return fmt.Sprintf("+%d dividedSysEx % X", e.DeltaTime, e.Data)
}

type Track struct {
	Events []Event
}

// AbsoluteTicks returns, for each event, the ticks elapsed since the start of the track.
func (t Track) AbsoluteTicks() []uint64 {
	out := make([]uint64, len(t.Events))
	var now uint64
	for i, e := range t.Events {
		now += uint64(e.Time().DeltaTime)
		out[i] = now
	}
	return out
}

type Header struct {
	Format       uint16
	TrackCount   uint16
	TicksPerBeat uint16
}

// File is the decoded content of a Standard MIDI File.
type File struct {
	Header Header
	Tracks []Track
}
