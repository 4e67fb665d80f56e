package patch

import "errors"

var (
	// ErrStaleLocation is returned when a location was computed against a
	// different buffer snapshot.
	ErrStaleLocation = errors.New("stale location")
	// ErrTextMismatch is returned when the buffer no longer holds the text
	// the location matched.
	ErrTextMismatch = errors.New("location text mismatch")
)
