package main

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Garik-/midifile/pkg/midi"
)

type result struct {
	name string
	file *midi.File
	err  error
}

func decodeFile(name string) *result {
	out := &result{name: name}

	buf, err := os.ReadFile(name)
	if err != nil {
		out.err = err
		return out
	}

	out.file, out.err = midi.Parse(buf)
	return out
}

// decodeWorker decodes paths with at most cntRoutines files in flight. done is
// signalled once every started decode has finished and out is closed.
func decodeWorker(ctx context.Context, paths <-chan string, cntRoutines int) (<-chan *result, <-chan struct{}) {
	log := decoderLog.Named("decodeWorker")
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, cntRoutines)

	loop:
		for path := range paths {
			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				log.Debug("context done")
				break loop
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()

				select {
				case out <- decodeFile(path):
				case <-ctx.Done():
					log.Debug("decodeFile context done", zap.String("path", path))
				}
				<-goroutines
			}(path)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}
