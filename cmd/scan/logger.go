package main

import (
	"go.uber.org/zap"

	"github.com/Garik-/midifile/pkg/midi"
)

var decoderLog = zap.NewNop()
var velocityMapLog = zap.NewNop()

// setLogger routes scan results, skipped files included, to l.
func setLogger(l *zap.Logger) {
	velocityMapLog = l
}

func enableDebugLogging(l *zap.Logger) {
	decoderLog = l
	midi.SetLogger(l)
}
