package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Garik-/midifile/pkg/midi"
)

type eventRecord struct {
	Type    string      `json:"type"`
	Subtype string      `json:"subtype"`
	Delta   uint32      `json:"deltaTime"`
	Offset  int64       `json:"offset"`
	Channel *uint8      `json:"channel,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

type fileRecord struct {
	Header midi.Header     `json:"header"`
	Tracks [][]eventRecord `json:"tracks"`
}

func record(e midi.Event) eventRecord {
	t := e.Time()
	r := eventRecord{Delta: t.DeltaTime, Offset: t.Offset}

	switch e := e.(type) {
	case *midi.MetaEvent:
		r.Type = "meta"
		r.Subtype = e.Meta.MetaType().String()
		if _, ok := e.Meta.(midi.UnknownMeta); ok {
			r.Subtype = "unknown"
		}
		r.Fields = e.Meta
	case *midi.ChannelEvent:
		ch := e.Channel
		r.Type = "channel"
		r.Subtype = e.Message.Kind().String()
		r.Channel = &ch
		r.Fields = e.Message
	case *midi.SysExEvent:
		r.Type = "sysEx"
		r.Fields = e.Data
	case *midi.DividedSysExEvent:
		r.Type = "dividedSysEx"
		r.Fields = e.Data
	}
	return r
}

func writeJSON(w io.Writer, f *midi.File) error {
	out := fileRecord{Header: f.Header, Tracks: make([][]eventRecord, len(f.Tracks))}
	for i, t := range f.Tracks {
		out.Tracks[i] = make([]eventRecord, 0, len(t.Events))
		for _, e := range t.Events {
			out.Tracks[i] = append(out.Tracks[i], record(e))
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, f *midi.File) error {
	h := f.Header
	if _, err := fmt.Fprintf(w, "format %d, %d track(s), %d ticks per beat\n", h.Format, h.TrackCount, h.TicksPerBeat); err != nil {
		return err
	}

	for i, t := range f.Tracks {
		if _, err := fmt.Fprintf(w, "track %d: %d event(s)\n", i, len(t.Events)); err != nil {
			return err
		}
		abs := t.AbsoluteTicks()
		for j, e := range t.Events {
			if _, err := fmt.Fprintf(w, "  %8d %v\n", abs[j], e); err != nil {
				return err
			}
		}
	}
	return nil
}
