package midi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := smfBytes(1, 96, []byte{
		// program change, channel 0, program 5
		0x00, 0xC0, 0x05,
		// delta 480, note on 60 velocity 64
		0x83, 0x60, 0x90, 0x3C, 0x40,
		// delta 240, note on 60 velocity 0
		0x81, 0x70, 0x90, 0x3C, 0x00,
	})

	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, Header{Format: 1, TrackCount: 1, TicksPerBeat: 96}, f.Header)
	require.Len(t, f.Tracks, 1)

	want := []Event{
		&ChannelEvent{Timing: Timing{DeltaTime: 0, Offset: 22, Size: 3}, Channel: 0, Message: ProgramChange{Program: 5}},
		&ChannelEvent{Timing: Timing{DeltaTime: 480, Offset: 25, Size: 5}, Channel: 0, Message: NoteOn{Note: 60, Velocity: 64}},
		&ChannelEvent{Timing: Timing{DeltaTime: 240, Offset: 30, Size: 5}, Channel: 0, Message: NoteOff{Note: 60, Velocity: 0}},
	}
	assert.Equal(t, want, f.Tracks[0].Events)
	assert.Equal(t, []uint64{0, 480, 720}, f.Tracks[0].AbsoluteTicks())

	off, ok := VelocityOffset(f.Tracks[0].Events[1])
	require.True(t, ok)
	assert.Equal(t, byte(0x40), data[off])
}

func TestParse_MultipleTracks(t *testing.T) {
	// the format 1 example from the SMF specification
	data := smfBytes(1, 96,
		[]byte{
			0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08,
			0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
			0x83, 0x00, 0xFF, 0x2F, 0x00,
		},
		[]byte{
			0x00, 0xC0, 0x05,
			0x81, 0x40, 0x90, 0x4C, 0x20,
			0x81, 0x40, 0x4C, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		},
		[]byte{
			0x00, 0xC1, 0x2E,
			0x60, 0x91, 0x43, 0x40,
			0x82, 0x20, 0x43, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		},
	)

	f, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, f.Tracks, 3)

	tempo := f.Tracks[0].Events[1].(*MetaEvent).Meta.(SetTempo)
	assert.Equal(t, uint32(500000), tempo.MicrosecondsPerBeat)
	assert.InDelta(t, 120.0, tempo.BPM(), 1e-9)
	assert.Equal(t, TimeSignature{Numerator: 4, Denominator: 4, Metronome: 24, ThirtySeconds: 8},
		f.Tracks[0].Events[0].(*MetaEvent).Meta)

	var deltas []uint32
	for _, e := range f.Tracks[1].Events {
		deltas = append(deltas, e.Time().DeltaTime)
	}
	assert.Equal(t, []uint32{0, 192, 192, 0}, deltas)
	assert.Equal(t, NoteOff{Note: 0x4C}, f.Tracks[1].Events[2].(*ChannelEvent).Message)

	assert.Equal(t, uint8(1), f.Tracks[2].Events[1].(*ChannelEvent).Channel)
	assert.Equal(t, NoteOff{Note: 0x43}, f.Tracks[2].Events[2].(*ChannelEvent).Message)
	assert.IsType(t, EndOfTrack{}, f.Tracks[2].Events[3].(*MetaEvent).Meta)
}

func TestParse_BadHeader(t *testing.T) {
	good := smfBytes(0, 96, []byte{0x00, 0xFF, 0x2F, 0x00})

	badTag := append([]byte{}, good...)
	copy(badTag, "RIFF")

	badLength := append([]byte{}, good...)
	badLength[7] = 7

	for name, data := range map[string][]byte{"tag": badTag, "length": badLength} {
		f, err := Parse(data)
		assert.Nil(t, f, name)
		assert.ErrorIs(t, err, ErrFormat, name)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), name)
		assert.Equal(t, -1, pe.Track)
	}
}

func TestParse_NotSMF(t *testing.T) {
	tests := map[string][]byte{
		"empty":           nil,
		"short tag":       []byte("MTh"),
		"riff":            []byte("RIFF\x24\x10\x00\x00RMID"),
		"header no body":  []byte("MThd\x00\x00\x00\x06\x00\x01"),
		"length too long": []byte("MThd\x7F\xFF\xFF\xFF"),
	}

	for name, data := range tests {
		f, err := Parse(data)
		assert.Nil(t, f, name)
		assert.ErrorIs(t, err, ErrFormat, name)
	}
}

func TestParse_WrongChunkWithOversizedLength(t *testing.T) {
	data := smfBytes(0, 96)
	data[11] = 1
	data = append(data, 'X', 'F', 'I', 'H', 0x00, 0x00, 0x10, 0x00)

	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrStructure)
	assert.NotErrorIs(t, err, ErrTruncated)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, pe.Track)
	assert.Equal(t, int64(14), pe.Offset)
}

func TestParse_SMPTEDivision(t *testing.T) {
	f, err := Parse(smfBytes(0, 0x8018, []byte{0x00, 0xFF, 0x2F, 0x00}))
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestParse_MissingTrackChunk(t *testing.T) {
	data := smfBytes(0, 96)
	data[11] = 1 // declare one track
	data = append(data, chunkBytes("XFIH", []byte{0})...)

	f, err := Parse(data)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrStructure)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, pe.Track)
	assert.Equal(t, int64(14), pe.Offset)
}

func TestParse_MissingTrack(t *testing.T) {
	data := smfBytes(1, 96, []byte{0x00, 0xFF, 0x2F, 0x00})
	data[11] = 2

	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParse_TrackLengthPastEnd(t *testing.T) {
	data := smfBytes(0, 96, []byte{0x00, 0xFF, 0x2F, 0x00})
	data[21] = 0x10

	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParse_EventCrossesChunkEnd(t *testing.T) {
	// the note on needs one more byte than the chunk holds
	data := smfBytes(0, 96, []byte{0x00, 0x90, 0x3C})
	data = append(data, 0x40)

	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParse_RunningStatusDoesNotCrossTracks(t *testing.T) {
	data := smfBytes(1, 96,
		[]byte{0x00, 0x90, 0x3C, 0x40},
		[]byte{0x00, 0x3C, 0x00},
	)

	f, err := Parse(data)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrStructure)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Track)
	assert.Contains(t, pe.Error(), "track 1")
}

func TestParse_UnknownMetaIsNotAnError(t *testing.T) {
	data := smfBytes(0, 96, []byte{
		0x00, 0xFF, 0x10, 0x03, 0x01, 0x02, 0x03,
		0x00, 0xFF, 0x2F, 0x00,
	})

	f, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, f.Tracks[0].Events, 2)
	assert.Equal(t, UnknownMeta{Type: 0x10, Data: []byte{1, 2, 3}}, f.Tracks[0].Events[0].(*MetaEvent).Meta)
}

func TestParse_TrailingBytesIgnored(t *testing.T) {
	data := smfBytes(0, 96, []byte{0x00, 0xFF, 0x2F, 0x00})
	data = append(data, 0xDE, 0xAD)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, f.Tracks, 1)
}

func TestParse_EmptyTrack(t *testing.T) {
	f, err := Parse(smfBytes(0, 480, []byte{}))
	require.NoError(t, err)
	require.Len(t, f.Tracks, 1)
	assert.Empty(t, f.Tracks[0].Events)
}

func TestDecode(t *testing.T) {
	data := smfBytes(0, 480, []byte{0x00, 0xFF, 0x03, 0x02, 'o', 'k', 0x00, 0xFF, 0x2F, 0x00})

	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	data[26] = 'X'
	assert.Equal(t, Text{Type: MetaTrackName, Text: "ok"}, f.Tracks[0].Events[0].(*MetaEvent).Meta)
}

func TestParse_ConcurrentCalls(t *testing.T) {
	data := smfBytes(0, 96, []byte{
		0x00, 0x90, 0x3C, 0x40,
		0x60, 0x3C, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	})

	done := make(chan error, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			f, err := Parse(data)
			if err == nil && len(f.Tracks[0].Events) != 3 {
				err = errors.New("unexpected event count")
			}
			done <- err
		}()
	}

	for i := 0; i < cap(done); i++ {
		require.NoError(t, <-done)
	}
}
