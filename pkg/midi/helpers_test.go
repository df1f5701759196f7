package midi

import (
	"bytes"
	"encoding/binary"
)

func chunkBytes(id string, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

func smfBytes(format, division uint16, tracks ...[]byte) []byte {
	var hdr bytes.Buffer
	_ = binary.Write(&hdr, binary.BigEndian, []uint16{format, uint16(len(tracks)), division})

	out := chunkBytes("MThd", hdr.Bytes())
	for _, t := range tracks {
		out = append(out, chunkBytes("MTrk", t)...)
	}
	return out
}

// singleEvent decodes one event from b with a fresh decoder.
func singleEvent(b []byte) (Event, error) {
	var d eventDecoder
	return d.decode(NewCursor(b))
}
