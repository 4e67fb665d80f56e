package anchor

import (
	"fmt"

	"anchorpatch/internal/source"
)

// Location is the result of a successful locate.
type Location struct {
	Span       source.Span
	Text       string // exact substring covered by Span
	Capture    string
	HasCapture bool
}

// Start returns the absolute start offset.
func (l Location) Start() int { return int(l.Span.Start) }

// End returns the absolute end offset.
func (l Location) End() int { return int(l.Span.End) }

func (l Location) String() string {
	if l.HasCapture {
		return fmt.Sprintf("%d-%d %q (captured %q)", l.Span.Start, l.Span.End, l.Text, l.Capture)
	}
	return fmt.Sprintf("%d-%d %q", l.Span.Start, l.Span.End, l.Text)
}

// Locator maps a buffer snapshot to a Location or a miss.
type Locator func(buf *source.Buffer) (Location, error)

// locationAt builds a Location over [start, end) of buf.
func locationAt(buf *source.Buffer, start, end int) (Location, error) {
	span, err := buf.SpanOf(start, end)
	if err != nil {
		return Location{}, err
	}
	return Location{Span: span, Text: buf.Content[start:end]}, nil
}

func capturedAt(buf *source.Buffer, start, end int, capture string) (Location, error) {
	loc, err := locationAt(buf, start, end)
	if err != nil {
		return Location{}, err
	}
	loc.Capture = capture
	loc.HasCapture = true
	return loc, nil
}
