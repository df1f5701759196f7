package main

import (
	"github.com/Garik-/midifile/pkg/midi"
)

// span is one sounding note in absolute ticks.
type span struct {
	Track    int
	Channel  uint8
	Note     uint8
	Velocity uint8
	Start    uint64
	End      uint64
}

type roll struct {
	Spans      []span
	Length     uint64 // ticks of the longest track
	TrackNames map[int]string
	Low, High  uint8
}

type noteKey struct {
	channel, note uint8
}

// buildRoll pairs note ons with the next note off for the same channel and
// note in the same track. Notes still sounding at the end of a track are cut
// at its last event.
func buildRoll(f *midi.File) *roll {
	r := &roll{TrackNames: make(map[int]string), Low: 127}

	for ti, track := range f.Tracks {
		abs := track.AbsoluteTicks()
		open := make(map[noteKey][]span)

		var end uint64
		if len(abs) > 0 {
			end = abs[len(abs)-1]
		}
		if end > r.Length {
			r.Length = end
		}

		for i, e := range track.Events {
			if me, ok := e.(*midi.MetaEvent); ok {
				if text, ok := me.Meta.(midi.Text); ok && text.Type == midi.MetaTrackName {
					r.TrackNames[ti] = text.Text
				}
				continue
			}

			n, ok := midi.Note(e)
			if !ok {
				continue
			}

			k := noteKey{n.Channel, n.Note}
			if n.On {
				open[k] = append(open[k], span{Track: ti, Channel: n.Channel, Note: n.Note, Velocity: n.Velocity, Start: abs[i]})
				continue
			}

			if pending := open[k]; len(pending) > 0 {
				s := pending[0]
				s.End = abs[i]
				open[k] = pending[1:]
				r.add(s)
			}
		}

		for _, pending := range open {
			for _, s := range pending {
				s.End = end
				r.add(s)
			}
		}
	}

	return r
}

func (r *roll) add(s span) {
	r.Spans = append(r.Spans, s)
	if s.Note < r.Low {
		r.Low = s.Note
	}
	if s.Note > r.High {
		r.High = s.Note
	}
}
