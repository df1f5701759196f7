package main

import (
	"io"
	"math/rand"

	"github.com/Garik-/midifile/internal/velocitydb"
	"github.com/Garik-/midifile/pkg/midi"
)

type humanizer struct {
	db       *velocitydb.DB
	rnd      *rand.Rand
	min, max int
}

// randVelocity picks one of velocities inside (min, max). ok is false when none qualifies.
func (h *humanizer) randVelocity(velocities []uint8) (uint8, bool) {
	var candidates []uint8
	for _, v := range velocities {
		if int(v) > h.min && int(v) < h.max {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[h.rnd.Intn(len(candidates))], true
}

// writeRandVelocity overwrites the velocity byte of every note on found in the
// database. w must hold the same bytes f was decoded from. It returns the
// number of notes rewritten.
func (h *humanizer) writeRandVelocity(w io.WriteSeeker, f *midi.File) (int, error) {
	var n int
	for _, track := range f.Tracks {
		abs := track.AbsoluteTicks()
		for i, e := range track.Events {
			note, ok := midi.Note(e)
			if !ok || !note.On {
				continue
			}

			pos := midi.QuarterPosition(abs[i], f.Header.TicksPerBeat)
			velocity, ok := h.randVelocity(h.db.Velocities(note.Note, midi.KindNoteOn, pos))
			if !ok {
				continue
			}

			offset, _ := midi.VelocityOffset(e)
			if _, err := w.Seek(offset, io.SeekStart); err != nil {
				return n, err
			}
			if _, err := w.Write([]byte{velocity}); err != nil {
				return n, err
			}
			n++
		}
	}

	return n, nil
}
