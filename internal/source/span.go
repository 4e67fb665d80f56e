package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range inside one specific buffer snapshot.
type Span struct {
	Snapshot Snapshot
	Start    uint32 // в байтах включительно
	End      uint32 // в байтах не включительно
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d-%d", s.Snapshot, s.Start, s.End)
}

// Contains reports whether other lies wholly inside s (same snapshot).
func (s Span) Contains(other Span) bool {
	return s.Snapshot == other.Snapshot && s.Start <= other.Start && other.End <= s.End
}

// Shift moves the span right by n bytes, keeping its snapshot.
// It is only meaningful for offsets relative to a sub-slice of the buffer.
func (s Span) Shift(n uint32) Span {
	return Span{
		Snapshot: s.Snapshot,
		Start:    s.Start + n,
		End:      s.End + n,
	}
}

// Sub returns the span of [start, end) given relative to s. The result must
// lie inside s.
func (s Span) Sub(start, end int) (Span, error) {
	rs, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("%w: start %d: %w", ErrSpanOutOfRange, start, err)
	}
	re, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("%w: end %d: %w", ErrSpanOutOfRange, end, err)
	}
	sub := Span{Snapshot: s.Snapshot, Start: rs, End: re}.Shift(s.Start)
	if rs > re || !s.Contains(sub) {
		return Span{}, fmt.Errorf("%w: [%d,%d) outside %s", ErrSpanOutOfRange, start, end, s)
	}
	return sub, nil
}
