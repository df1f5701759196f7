// Package velocitydb collects note velocities seen across MIDI files, keyed by
// note, channel message kind and quarter position within a bar.
package velocitydb

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/Garik-/midifile/pkg/midi"
)

type velocitySet map[uint8]bool
type positionMap map[int]velocitySet
type kindMap map[midi.Kind]positionMap

// DB maps note -> kind -> position -> velocities.
type DB struct {
	notes map[uint8]kindMap
}

func New() *DB {
	return &DB{notes: make(map[uint8]kindMap)}
}

func (db *DB) Add(note uint8, kind midi.Kind, position int, velocity uint8) {
	kinds, ok := db.notes[note]
	if !ok {
		kinds = make(kindMap)
		db.notes[note] = kinds
	}

	positions, ok := kinds[kind]
	if !ok {
		positions = make(positionMap)
		kinds[kind] = positions
	}

	velocities, ok := positions[position]
	if !ok {
		velocities = make(velocitySet)
		positions[position] = velocities
	}

	velocities[velocity] = true
}

// AddFile records every note on of f with a non-zero velocity.
func (db *DB) AddFile(f *midi.File) {
	for _, track := range f.Tracks {
		abs := track.AbsoluteTicks()
		for i, e := range track.Events {
			n, ok := midi.Note(e)
			if !ok || !n.On {
				continue
			}
			db.Add(n.Note, midi.KindNoteOn, midi.QuarterPosition(abs[i], f.Header.TicksPerBeat), n.Velocity)
		}
	}
}

// Velocities returns the sorted velocities recorded at position. When nothing
// was recorded there, velocities from every position of the note are returned.
func (db *DB) Velocities(note uint8, kind midi.Kind, position int) []uint8 {
	positions := db.notes[note][kind]
	if v, ok := positions[position]; ok {
		return sorted(v)
	}

	all := make(velocitySet)
	for _, v := range positions {
		for vel := range v {
			all[vel] = true
		}
	}
	return sorted(all)
}

// Len returns the number of notes in the database.
func (db *DB) Len() int {
	return len(db.notes)
}

// on-disk form: note -> kind -> position -> velocities
type document map[uint8]map[uint8]map[int][]int

func (db *DB) Save(w io.Writer) error {
	doc := make(document, len(db.notes))
	for note, kinds := range db.notes {
		doc[note] = make(map[uint8]map[int][]int, len(kinds))
		for kind, positions := range kinds {
			doc[note][uint8(kind)] = make(map[int][]int, len(positions))
			for pos, v := range positions {
				for _, vel := range sorted(v) {
					doc[note][uint8(kind)][pos] = append(doc[note][uint8(kind)][pos], int(vel))
				}
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func Load(r io.Reader) (*DB, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	db := New()
	for note, kinds := range doc {
		for kind, positions := range kinds {
			for pos, velocities := range positions {
				for _, v := range velocities {
					db.Add(note, midi.Kind(kind), pos, uint8(v))
				}
			}
		}
	}
	return db, nil
}

func sorted(v velocitySet) []uint8 {
	out := make([]uint8, 0, len(v))
	for vel := range v {
		out = append(out, vel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
