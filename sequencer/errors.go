package sequencer

import "github.com/pkg/errors"

var (
	// ErrConfiguration covers a non-positive tempo, a scheduler used before
	// Configure and an invalid pulse/step pair.
	ErrConfiguration      = errors.New("configuration error")
	ErrInvalidTrackIndex  = errors.New("invalid track index")
	ErrUnknownDestination = errors.New("unknown destination")
	ErrOutputDevice       = errors.New("output device failure")
)
