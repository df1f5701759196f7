package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/Garik-/midifile/internal/velocitydb"
)

// newVelocityMap decodes every path and collects note on velocities. Files
// that fail to decode are logged and skipped unless strict is set.
func newVelocityMap(parent context.Context, paths <-chan string, cntRoutines int, strict bool) (*velocitydb.DB, error) {
	log := velocityMapLog.Named("newVelocityMap")
	ctx, cancel := context.WithCancel(parent)
	results, done := decodeWorker(ctx, paths, cntRoutines)

	defer func() {
		log.Debug("cancel")
		cancel()
		for range results {
		}
		<-done // wait decodeWorker closed
	}()

	db := velocitydb.New()

	for result := range results {
		if result.err != nil {
			if strict {
				return nil, result.err
			}
			log.Warn("skip", zap.String("name", result.name), zap.Error(result.err))
			continue
		}

		log.Debug("result", zap.String("name", result.name), zap.Int("tracks", len(result.file.Tracks)))
		db.AddFile(result.file)
	}

	return db, nil
}
