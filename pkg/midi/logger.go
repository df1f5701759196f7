package midi

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger enables debug tracing of chunk framing and track decoding.
// Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l.Named("midi")
}
