package midi

// eventDecoder decodes the events of one track. runningStatus holds the last
// explicit channel status byte seen in that track; zero means none yet.
type eventDecoder struct {
	runningStatus byte
}

func (d *eventDecoder) decode(c *Cursor) (Event, error) {
	start := c.Offset()

	delta, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}

	statusOffset := c.Offset()
	status, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}

	t := Timing{DeltaTime: delta, Offset: start}

	var e Event
	if status&0xF0 == 0xF0 {
		e, err = d.decodeSystem(c, t, status, statusOffset)
	} else {
		e, err = d.decodeChannel(c, t, status, statusOffset)
	}
	if err != nil {
		return nil, err
	}

	setSize(e, int(c.Offset()-start))
	return e, nil
}

func (d *eventDecoder) decodeSystem(c *Cursor, t Timing, status byte, at int64) (Event, error) {
	switch status {
	case 0xFF:
		return decodeMeta(c, t)

	case 0xF0, 0xF7:
		length, err := c.ReadVarInt()
		if err != nil {
			return nil, err
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		if status == 0xF0 {
			return &SysExEvent{Timing: t, Data: data}, nil
		}
		return &DividedSysExEvent{Timing: t, Data: data}, nil
	}

	return nil, newError(ErrUnrecognisedEventType, at, "status byte %#02x", status)
}

func (d *eventDecoder) decodeChannel(c *Cursor, t Timing, status byte, at int64) (Event, error) {
	var param1 uint8
	var err error

	if status&0x80 == 0 {
		// running status: the byte just read is the first data byte
		if d.runningStatus == 0 {
			return nil, newError(ErrStructure, at, "running status data byte %#02x with no preceding status", status)
		}
		param1 = status
		status = d.runningStatus
	} else {
		if param1, err = c.ReadUint8(); err != nil {
			return nil, err
		}
		d.runningStatus = status
	}

	e := &ChannelEvent{Timing: t, Channel: status & 0x0F}

	switch kind := Kind(status >> 4); kind {
	case KindNoteOff:
		v, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		e.Message = NoteOff{Note: param1, Velocity: v}

	case KindNoteOn:
		v, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if v == 0 {
			e.Message = NoteOff{Note: param1}
		} else {
			e.Message = NoteOn{Note: param1, Velocity: v}
		}

	case KindNoteAftertouch:
		v, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		e.Message = NoteAftertouch{Note: param1, Amount: v}

	case KindController:
		v, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		e.Message = Controller{Controller: param1, Value: v}

	case KindProgramChange:
		e.Message = ProgramChange{Program: param1}

	case KindChannelAftertouch:
		e.Message = ChannelAftertouch{Amount: param1}

	case KindPitchBend:
		msb, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		e.Message = PitchBend{Value: uint16(param1) + uint16(msb)<<7}

	default:
		return nil, newError(ErrUnrecognisedEventType, at, "channel message kind %#x", uint8(kind))
	}

	return e, nil
}

// metaLengths lists the meta types with a fixed payload size.
var metaLengths = map[MetaType]uint32{
	MetaSequenceNumber: 2,
	MetaChannelPrefix:  1,
	MetaEndOfTrack:     0,
	MetaSetTempo:       3,
	MetaSMPTEOffset:    5,
	MetaTimeSignature:  4,
	MetaKeySignature:   2,
}

var smpteFrameRates = map[uint8]uint8{0x00: 24, 0x20: 25, 0x40: 29, 0x60: 30}

func decodeMeta(c *Cursor, t Timing) (Event, error) {
	typ, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	mt := MetaType(typ)

	lengthOffset := c.Offset()
	length, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}

	if want, ok := metaLengths[mt]; ok && length != want {
		return nil, newError(ErrFormat, lengthOffset, "expected length for %s event is %d, got %d", mt, want, length)
	}

	// the payload is bounded so a fixed-size read can never run into the next event
	p, err := c.Sub(int(length))
	if err != nil {
		return nil, err
	}

	m, err := decodeMetaBody(p, mt, int(length))
	if err != nil {
		return nil, err
	}

	return &MetaEvent{Timing: t, Meta: m}, nil
}

func decodeMetaBody(p *Cursor, mt MetaType, length int) (Meta, error) {
	switch mt {
	case MetaSequenceNumber:
		n, err := p.ReadUint16()
		return SequenceNumber{Number: n}, err

	case MetaText, MetaCopyrightNotice, MetaTrackName, MetaInstrumentName,
		MetaLyrics, MetaMarker, MetaCuePoint:
		b, err := p.ReadBytes(length)
		return Text{Type: mt, Text: string(b)}, err

	case MetaChannelPrefix:
		ch, err := p.ReadUint8()
		return ChannelPrefix{Channel: ch}, err

	case MetaEndOfTrack:
		return EndOfTrack{}, nil

	case MetaSetTempo:
		b, err := p.next(3)
		if err != nil {
			return nil, err
		}
		return SetTempo{MicrosecondsPerBeat: uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])}, nil

	case MetaSMPTEOffset:
		b, err := p.next(5)
		if err != nil {
			return nil, err
		}
		return SMPTEOffset{
			FrameRate: smpteFrameRates[b[0]&0x60],
			Hour:      b[0] & 0x1F,
			Min:       b[1],
			Sec:       b[2],
			Frame:     b[3],
			Subframe:  b[4],
		}, nil

	case MetaTimeSignature:
		at := p.Offset()
		b, err := p.next(4)
		if err != nil {
			return nil, err
		}
		if b[1] > 31 {
			return nil, newError(ErrFormat, at+1, "time signature denominator 2^%d out of range", b[1])
		}
		return TimeSignature{
			Numerator:     b[0],
			Denominator:   1 << b[1],
			Metronome:     b[2],
			ThirtySeconds: b[3],
		}, nil

	case MetaKeySignature:
		key, err := p.ReadInt8()
		if err != nil {
			return nil, err
		}
		scale, err := p.ReadUint8()
		return KeySignature{Key: key, Scale: scale}, err

	case MetaSequencerSpecific:
		b, err := p.ReadBytes(length)
		return SequencerSpecific{Data: b}, err
	}

	b, err := p.ReadBytes(length)
	return UnknownMeta{Type: mt, Data: b}, err
}

func setSize(e Event, n int) {
	switch e := e.(type) {
	case *MetaEvent:
		e.Size = n
	case *ChannelEvent:
		e.Size = n
	case *SysExEvent:
		e.Size = n
	case *DividedSysExEvent:
		e.Size = n
	}
}
