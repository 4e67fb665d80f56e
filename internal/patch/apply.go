package patch

import (
	"fmt"

	"anchorpatch/internal/anchor"
	"anchorpatch/internal/source"
)

// Apply returns buf[:start] + replacement + buf[end:] for loc. The input
// buffer is left untouched.
func Apply(buf *source.Buffer, loc anchor.Location, replacement string) (*source.Buffer, error) {
	if loc.Span.Snapshot != buf.Snapshot() {
		return nil, fmt.Errorf("%w: location from %s, buffer is %s", ErrStaleLocation, loc.Span.Snapshot, buf.Snapshot())
	}
	current, err := buf.Slice(loc.Span)
	if err != nil {
		return nil, err
	}
	if current != loc.Text {
		return nil, fmt.Errorf("%w: at %s want %q, have %q", ErrTextMismatch, loc.Span, loc.Text, current)
	}
	return buf.Splice(loc.Start(), loc.End(), replacement)
}
