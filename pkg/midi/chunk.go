package midi

import (
	"go.uber.org/zap"
)

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64} // MThd
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B} // MTrk
)

const headerLength = 6

// chunk is one tagged, length-prefixed block. It is consumed as soon as it is read.
type chunk struct {
	id     [4]byte
	length uint32
	offset int64 // absolute position of the tag
	data   *Cursor
}

// readChunkHeader reads the tag and length only, so callers can reject a
// wrong tag before the declared length is trusted.
func readChunkHeader(c *Cursor) (*chunk, error) {
	ch := &chunk{offset: c.Offset()}

	id, err := c.next(4)
	if err != nil {
		return nil, err
	}
	copy(ch.id[:], id)

	if ch.length, err = c.ReadUint32(); err != nil {
		return nil, err
	}
	return ch, nil
}

// readBody bounds the chunk payload.
func (ch *chunk) readBody(c *Cursor) error {
	var err error
	if ch.data, err = c.Sub(int(ch.length)); err != nil {
		return err
	}

	log.Debug("chunk",
		zap.ByteString("id", ch.id[:]),
		zap.Uint32("length", ch.length),
		zap.Int64("offset", ch.offset))

	return nil
}
