package midi

import "fmt"

// Kind is the high nibble of a channel status byte.
type Kind uint8

const (
	KindNoteOff           Kind = 0x8
	KindNoteOn            Kind = 0x9
	KindNoteAftertouch    Kind = 0xA
	KindController        Kind = 0xB
	KindProgramChange     Kind = 0xC
	KindChannelAftertouch Kind = 0xD
	KindPitchBend         Kind = 0xE
)

func (k Kind) String() string {
	switch k {
	case KindNoteOff:
		return "noteOff"
	case KindNoteOn:
		return "noteOn"
	case KindNoteAftertouch:
		return "noteAftertouch"
	case KindController:
		return "controller"
	case KindProgramChange:
		return "programChange"
	case KindChannelAftertouch:
		return "channelAftertouch"
	case KindPitchBend:
		return "pitchBend"
	}
	return fmt.Sprintf("unknown(%#x)", uint8(k))
}

// ChannelMessage is the body of a ChannelEvent.
type ChannelMessage interface {
	Kind() Kind
}

type NoteOff struct {
	Note     uint8
	Velocity uint8
}

type NoteOn struct {
	Note     uint8
	Velocity uint8
}

type NoteAftertouch struct {
	Note   uint8
	Amount uint8
}

type Controller struct {
	Controller uint8
	Value      uint8
}

type ProgramChange struct {
	Program uint8
}

type ChannelAftertouch struct {
	Amount uint8
}

// PitchBend holds the 14-bit bend value; 0x2000 is centre.
type PitchBend struct {
	Value uint16
}

func (NoteOff) Kind() Kind           { return KindNoteOff }
func (NoteOn) Kind() Kind            { return KindNoteOn }
func (NoteAftertouch) Kind() Kind    { return KindNoteAftertouch }
func (Controller) Kind() Kind        { return KindController }
func (ProgramChange) Kind() Kind     { return KindProgramChange }
func (ChannelAftertouch) Kind() Kind { return KindChannelAftertouch }
func (PitchBend) Kind() Kind         { return KindPitchBend }
