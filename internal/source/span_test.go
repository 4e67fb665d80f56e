package source

import (
	"errors"
	"testing"
)

func TestSpan_Shift(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{
			name:     "shift normal span right by 5",
			span:     Span{Snapshot: 1, Start: 10, End: 20},
			shift:    5,
			expected: Span{Snapshot: 1, Start: 15, End: 25},
		},
		{
			name:     "shift by 0",
			span:     Span{Snapshot: 1, Start: 10, End: 20},
			shift:    0,
			expected: Span{Snapshot: 1, Start: 10, End: 20},
		},
		{
			name:     "shift zero-length span",
			span:     Span{Snapshot: 7, Start: 3, End: 3},
			shift:    4,
			expected: Span{Snapshot: 7, Start: 7, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Shift(tt.shift)
			if result != tt.expected {
				t.Errorf("Shift() = %+v, want %+v", result, tt.expected)
			}
			if result.Snapshot != tt.span.Snapshot {
				t.Errorf("snapshot changed: got %s, want %s", result.Snapshot, tt.span.Snapshot)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{Snapshot: 1, Start: 10, End: 20}
	tests := []struct {
		name  string
		inner Span
		want  bool
	}{
		{"same span", Span{Snapshot: 1, Start: 10, End: 20}, true},
		{"strict inside", Span{Snapshot: 1, Start: 12, End: 18}, true},
		{"empty at end", Span{Snapshot: 1, Start: 20, End: 20}, true},
		{"crosses end", Span{Snapshot: 1, Start: 15, End: 21}, false},
		{"crosses start", Span{Snapshot: 1, Start: 9, End: 12}, false},
		{"other snapshot", Span{Snapshot: 2, Start: 12, End: 18}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestSpan_Len(t *testing.T) {
	if got := (Span{Start: 4, End: 9}).Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}

func TestSpan_Sub(t *testing.T) {
	outer := Span{Snapshot: 3, Start: 10, End: 20}
	tests := []struct {
		name       string
		start, end int
		want       Span
		wantErr    bool
	}{
		{"whole", 0, 10, Span{Snapshot: 3, Start: 10, End: 20}, false},
		{"inside", 2, 5, Span{Snapshot: 3, Start: 12, End: 15}, false},
		{"empty at end", 10, 10, Span{Snapshot: 3, Start: 20, End: 20}, false},
		{"past end", 4, 11, Span{}, true},
		{"reversed", 5, 2, Span{}, true},
		{"negative", -1, 3, Span{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outer.Sub(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrSpanOutOfRange) {
					t.Fatalf("Sub(%d, %d) error = %v, want ErrSpanOutOfRange", tt.start, tt.end, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sub(%d, %d): %v", tt.start, tt.end, err)
			}
			if got != tt.want {
				t.Errorf("Sub(%d, %d) = %+v, want %+v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
