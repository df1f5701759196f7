package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Garik-/midifile/pkg/midi"
)

// one track, 480 ticks per beat: note 35 on at beat 0 (velocity 90) and at beat 2 (velocity 72)
var drumFile = []byte{
	0x4D, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xE0,
	0x4D, 0x54, 0x72, 0x6B, 0, 0, 0, 20,
	0x00, 0x99, 35, 90,
	0x83, 0x60, 35, 0,
	0x83, 0x60, 35, 72,
	0x83, 0x60, 35, 0,
	0x00, 0xFF, 0x2F, 0x00,
}

func pathList(t *testing.T, files map[string][]byte) <-chan string {
	t.Helper()
	dir := t.TempDir()

	out := make(chan string, len(files))
	for name, data := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		out <- path
	}
	close(out)
	return out
}

func TestDecodeFile(t *testing.T) {
	paths := pathList(t, map[string][]byte{"a.mid": drumFile})

	r := decodeFile(<-paths)
	require.NoError(t, r.err)
	require.Len(t, r.file.Tracks, 1)
	assert.Len(t, r.file.Tracks[0].Events, 5)

	r = decodeFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, r.err)
}

func TestDecodeWorker(t *testing.T) {
	paths := pathList(t, map[string][]byte{
		"a.mid": drumFile,
		"b.mid": drumFile,
		"c.mid": []byte("RIFF"),
	})

	results, done := decodeWorker(context.Background(), paths, 2)

	var ok, failed int
	for r := range results {
		if r.err != nil {
			failed++
			continue
		}
		ok++
	}
	<-done

	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
}

func TestNewVelocityMap(t *testing.T) {
	files := map[string][]byte{
		"a.mid": drumFile,
		"b.mid": drumFile[:20],
	}

	db, err := newVelocityMap(context.Background(), pathList(t, files), 2, false)
	require.NoError(t, err)
	assert.Equal(t, []uint8{90}, db.Velocities(35, midi.KindNoteOn, 0))
	assert.Equal(t, []uint8{72}, db.Velocities(35, midi.KindNoteOn, 2))

	_, err = newVelocityMap(context.Background(), pathList(t, files), 2, true)
	assert.ErrorIs(t, err, midi.ErrTruncated)
}

func TestNewVelocityMap_LogsSkippedFiles(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	setLogger(zap.New(core))
	defer setLogger(zap.NewNop())

	files := map[string][]byte{
		"a.mid": drumFile,
		"b.mid": []byte("RIFF"),
	}

	_, err := newVelocityMap(context.Background(), pathList(t, files), 2, false)
	require.NoError(t, err)

	skipped := logs.FilterMessage("skip").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.WarnLevel, skipped[0].Level)
	assert.Contains(t, skipped[0].ContextMap()["name"], "b.mid")
}
