package midi

import "fmt"

type MetaType uint8

const (
	MetaSequenceNumber    MetaType = 0x00
	MetaText              MetaType = 0x01
	MetaCopyrightNotice   MetaType = 0x02
	MetaTrackName         MetaType = 0x03
	MetaInstrumentName    MetaType = 0x04
	MetaLyrics            MetaType = 0x05
	MetaMarker            MetaType = 0x06
	MetaCuePoint          MetaType = 0x07
	MetaChannelPrefix     MetaType = 0x20
	MetaEndOfTrack        MetaType = 0x2F
	MetaSetTempo          MetaType = 0x51
	MetaSMPTEOffset       MetaType = 0x54
	MetaTimeSignature     MetaType = 0x58
	MetaKeySignature      MetaType = 0x59
	MetaSequencerSpecific MetaType = 0x7F
)

var metaNames = map[MetaType]string{
	MetaSequenceNumber:    "sequenceNumber",
	MetaText:              "text",
	MetaCopyrightNotice:   "copyrightNotice",
	MetaTrackName:         "trackName",
	MetaInstrumentName:    "instrumentName",
	MetaLyrics:            "lyrics",
	MetaMarker:            "marker",
	MetaCuePoint:          "cuePoint",
	MetaChannelPrefix:     "midiChannelPrefix",
	MetaEndOfTrack:        "endOfTrack",
	MetaSetTempo:          "setTempo",
	MetaSMPTEOffset:       "smpteOffset",
	MetaTimeSignature:     "timeSignature",
	MetaKeySignature:      "keySignature",
	MetaSequencerSpecific: "sequencerSpecific",
}

func (t MetaType) String() string {
	if name, ok := metaNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%#02x)", uint8(t))
}

// Meta is the body of a MetaEvent.
type Meta interface {
	MetaType() MetaType
}

type SequenceNumber struct {
	Number uint16
}

// Text holds any of the text meta events, 0x01 through 0x07.
type Text struct {
	Type MetaType
	Text string
}

type ChannelPrefix struct {
	Channel uint8
}

type EndOfTrack struct{}

type SetTempo struct {
	MicrosecondsPerBeat uint32
}

// BPM converts the tempo to quarter notes per minute.
func (t SetTempo) BPM() float64 {
	if t.MicrosecondsPerBeat == 0 {
		return 0
	}
	return 60000000 / float64(t.MicrosecondsPerBeat)
}

type SMPTEOffset struct {
	FrameRate uint8 // 24, 25, 29 (drop frame) or 30
	Hour      uint8
	Min       uint8
	Sec       uint8
	Frame     uint8
	Subframe  uint8
}

type TimeSignature struct {
	Numerator     uint8
	Denominator   uint32
	Metronome     uint8 // MIDI clocks per metronome click
	ThirtySeconds uint8 // notated 32nd notes per quarter note
}

type KeySignature struct {
	Key   int8 // sharps if positive, flats if negative
	Scale uint8
}

type SequencerSpecific struct {
	Data []byte
}

// UnknownMeta is a meta event with a type this package does not interpret.
type UnknownMeta struct {
	Type MetaType
	Data []byte
}

func (SequenceNumber) MetaType() MetaType    { return MetaSequenceNumber }
func (m Text) MetaType() MetaType            { return m.Type }
func (ChannelPrefix) MetaType() MetaType     { return MetaChannelPrefix }
func (EndOfTrack) MetaType() MetaType        { return MetaEndOfTrack }
func (SetTempo) MetaType() MetaType          { return MetaSetTempo }
func (SMPTEOffset) MetaType() MetaType       { return MetaSMPTEOffset }
func (TimeSignature) MetaType() MetaType     { return MetaTimeSignature }
func (KeySignature) MetaType() MetaType      { return MetaKeySignature }
func (SequencerSpecific) MetaType() MetaType { return MetaSequencerSpecific }
func (m UnknownMeta) MetaType() MetaType     { return m.Type }
