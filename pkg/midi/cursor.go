package midi

// Cursor reads sequentially from an immutable byte slice. A cursor created by
// Sub keeps reporting offsets relative to the outermost input, so positions
// recorded on events point into the original file.
type Cursor struct {
	buf  []byte
	off  int
	base int64
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the absolute position of the next byte to be read.
func (c *Cursor) Offset() int64 {
	return c.base + int64(c.off)
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	if c.off >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

func (c *Cursor) AtEnd() bool {
	return c.off >= len(c.buf)
}

// ReadBytes returns a copy of the next n bytes. Fewer than n remaining bytes
// is an ErrTruncated failure and the cursor does not move.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Sub consumes the next n bytes and returns a cursor bounded to them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	start := c.Offset()
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b, base: start}, nil
}

// ReadUint reads a big-endian unsigned integer of width 1, 2 or 4 bytes.
func (c *Cursor) ReadUint(width int) (uint32, error) {
	switch width {
	case 1, 2, 4:
	default:
		panic("midi: unsupported integer width")
	}

	b, err := c.next(width)
	if err != nil {
		return 0, err
	}

	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	v, err := c.ReadUint(1)
	return uint8(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	v, err := c.ReadUint(2)
	return uint16(v), err
}

func (c *Cursor) ReadUint32() (uint32, error) {
	return c.ReadUint(4)
}

// ReadInt8 reads one byte as a two's-complement signed value.
func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint(1)
	return int8(v), err
}

// maxVarIntLen is the longest variable-length quantity SMF allows (0x0FFFFFFF).
const maxVarIntLen = 4

// ReadVarInt reads a MIDI variable-length quantity: 7 bits per byte, most
// significant group first, top bit set on every byte but the last.
func (c *Cursor) ReadVarInt() (uint32, error) {
	start := c.Offset()

	var v uint32
	for i := 0; i < maxVarIntLen; i++ {
		b, err := c.ReadUint8()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}

	return 0, newError(ErrFormat, start, "variable-length quantity longer than %d bytes", maxVarIntLen)
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, newError(ErrTruncated, c.Offset(), "need %d bytes, have %d", n, c.Len())
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}
