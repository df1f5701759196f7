package midi

import (
	"errors"
	"io"

	"go.uber.org/zap"
)

// Parse decodes a complete Standard MIDI File held in buf. It either returns
// the whole file or the first error met, never a partial result. Text and
// data payloads are copied, so buf may be reused once Parse returns. Bytes
// after the last declared track are ignored.
func Parse(buf []byte) (*File, error) {
	c := NewCursor(buf)

	header, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	f := &File{
		Header: header,
		Tracks: make([]Track, header.TrackCount),
	}

	for i := range f.Tracks {
		t, err := parseTrack(c)
		if err != nil {
			return nil, inTrack(err, i)
		}
		f.Tracks[i] = t

		log.Debug("track", zap.Int("index", i), zap.Int("events", len(t.Events)))
	}

	return f, nil
}

// Decode reads r to the end and parses the result.
func Decode(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

func parseHeader(c *Cursor) (Header, error) {
	ch, err := readChunkHeader(c)
	if errors.Is(err, ErrTruncated) {
		return Header{}, newError(ErrFormat, 0, "bad header: header chunk not found in %d bytes", c.Len())
	}
	if err != nil {
		return Header{}, err
	}

	if ch.id != headerChunkID || ch.length != headerLength {
		return Header{}, newError(ErrFormat, ch.offset, "bad header: chunk %q, length %d", ch.id[:], ch.length)
	}

	if err := ch.readBody(c); err != nil {
		return Header{}, newError(ErrFormat, ch.offset, "bad header: %d byte payload not present", ch.length)
	}

	var h Header
	if h.Format, err = ch.data.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.TrackCount, err = ch.data.ReadUint16(); err != nil {
		return Header{}, err
	}

	at := ch.data.Offset()
	division, err := ch.data.ReadUint16()
	if err != nil {
		return Header{}, err
	}

	if division&0x8000 != 0 {
		return Header{}, newError(ErrUnsupportedFeature, at, "SMPTE time division %#04x", division)
	}
	h.TicksPerBeat = division

	log.Debug("header",
		zap.Uint16("format", h.Format),
		zap.Uint16("tracks", h.TrackCount),
		zap.Uint16("ticksPerBeat", h.TicksPerBeat))

	return h, nil
}

func parseTrack(c *Cursor) (Track, error) {
	ch, err := readChunkHeader(c)
	if err != nil {
		return Track{}, err
	}

	if ch.id != trackChunkID {
		return Track{}, newError(ErrStructure, ch.offset, "expected track chunk %q, got %q", trackChunkID[:], ch.id[:])
	}

	if err := ch.readBody(c); err != nil {
		return Track{}, err
	}

	var (
		t Track
		d eventDecoder
	)
	for !ch.data.AtEnd() {
		e, err := d.decode(ch.data)
		if err != nil {
			return Track{}, err
		}
		t.Events = append(t.Events, e)
	}

	return t, nil
}
