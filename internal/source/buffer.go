package source

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// ErrSpanOutOfRange is returned when offsets fall outside the buffer or are inverted.
var ErrSpanOutOfRange = errors.New("span out of range")

// ErrForeignSpan is returned when a span belongs to another snapshot.
var ErrForeignSpan = errors.New("span belongs to a different snapshot")

// Buffer is an immutable, fully materialised text value plus the path it came from.
// Every edit produces a new Buffer; offsets computed against one Buffer are
// only valid for Buffers with the same Snapshot.
type Buffer struct {
	Path     string
	Content  string
	snapshot Snapshot
	lineIdx  []uint32 // позиции '\n', строится лениво
	indexed  bool
}

// FromString wraps content as a Buffer identified by path.
func FromString(path, content string) *Buffer {
	return &Buffer{
		Path:     normalizePath(path),
		Content:  content,
		snapshot: Fingerprint(content),
	}
}

// Load reads a file from disk verbatim. Unlike compiler inputs, bundles are not
// normalised: the bytes written back must differ only where patches spliced.
func Load(path string) (*Buffer, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", path, err)
	}
	return FromString(path, string(content)), nil
}

// Snapshot returns the content fingerprint of the buffer.
func (b *Buffer) Snapshot() Snapshot {
	return b.snapshot
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.Content)
}

// SpanOf builds a Span over [start, end) after validating the range.
func (b *Buffer) SpanOf(start, end int) (Span, error) {
	if start < 0 || end < start || end > len(b.Content) {
		return Span{}, fmt.Errorf("%w: [%d,%d) in buffer of %d bytes", ErrSpanOutOfRange, start, end, len(b.Content))
	}
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start overflow: %w", err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end overflow: %w", err)
	}
	return Span{Snapshot: b.snapshot, Start: s, End: e}, nil
}

// Slice returns the text covered by span.
func (b *Buffer) Slice(span Span) (string, error) {
	if span.Snapshot != b.snapshot {
		return "", fmt.Errorf("%w: span %s, buffer %s", ErrForeignSpan, span, b.snapshot)
	}
	if span.Start > span.End || int(span.End) > len(b.Content) {
		return "", fmt.Errorf("%w: %s", ErrSpanOutOfRange, span)
	}
	return b.Content[span.Start:span.End], nil
}

// Splice returns a new Buffer equal to content[:start] + text + content[end:].
// It checks only the range; snapshot discipline belongs to the caller.
func (b *Buffer) Splice(start, end int, text string) (*Buffer, error) {
	if start < 0 || end < start || end > len(b.Content) {
		return nil, fmt.Errorf("%w: [%d,%d) in buffer of %d bytes", ErrSpanOutOfRange, start, end, len(b.Content))
	}
	if _, err := safecast.Conv[uint32](len(b.Content) - (end - start) + len(text)); err != nil {
		return nil, fmt.Errorf("spliced buffer too large: %w", err)
	}
	out := make([]byte, 0, len(b.Content)-(end-start)+len(text))
	out = append(out, b.Content[:start]...)
	out = append(out, text...)
	out = append(out, b.Content[end:]...)
	return &Buffer{
		Path:     b.Path,
		Content:  string(out),
		snapshot: Fingerprint(string(out)),
	}, nil
}

// Window returns up to radius bytes before start and after end, widened or
// narrowed so that neither side begins or ends inside a UTF-8 sequence.
func (b *Buffer) Window(start, end, radius int) (before, middle, after string) {
	n := len(b.Content)
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	lo := alignBackward(b.Content, max(start-radius, 0))
	hi := alignForward(b.Content, min(end+radius, n))
	return b.Content[lo:start], b.Content[start:end], b.Content[end:hi]
}

// Position converts a byte offset into a 1-based line and column.
func (b *Buffer) Position(offset uint32) LineCol {
	if !b.indexed {
		b.lineIdx = buildLineIndex(b.Content)
		b.indexed = true
	}
	return toLineCol(b.lineIdx, offset)
}
