package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a malformed header chunk or a meta event whose
	// declared length does not match its fixed size.
	ErrFormat = errors.New("midi: bad format")
	// ErrUnsupportedFeature reports valid SMF content this package does not decode.
	ErrUnsupportedFeature = errors.New("midi: unsupported feature")
	// ErrUnrecognisedEventType reports an unknown system status byte or channel message kind.
	ErrUnrecognisedEventType = errors.New("midi: unrecognised event type")
	// ErrStructure reports chunks or events out of the order SMF requires.
	ErrStructure = errors.New("midi: unexpected structure")
	// ErrTruncated reports a read past the end of the available bytes.
	ErrTruncated = errors.New("midi: truncated input")
)

// ParseError is returned by Parse. It unwraps to one of the sentinel errors above.
type ParseError struct {
	Track  int   // -1 while reading the header
	Offset int64 // absolute input offset where the failing read started
	Err    error
	Msg    string
}

func (e *ParseError) Error() string {
	where := "header"
	if e.Track >= 0 {
		where = fmt.Sprintf("track %d", e.Track)
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s at %s, offset %d", e.Err, where, e.Offset)
	}
	return fmt.Sprintf("%s - %s at %s, offset %d", e.Err, e.Msg, where, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newError(err error, offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Track: -1, Offset: offset, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// inTrack stamps the track index on errors raised below the parser.
func inTrack(err error, track int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Track = track
		return pe
	}
	return err
}
