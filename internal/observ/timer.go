package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Lap records the duration of one timed unit of work (a patch, a write).
type Lap struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects laps in the order they were begun. Safe for concurrent use.
type Timer struct {
	mu   sync.Mutex
	laps []Lap
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{laps: make([]Lap, 0, 8)} }

// Begin starts a new lap and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.laps = append(t.laps, Lap{Name: name, Start: time.Now()})
	return len(t.laps) - 1
}

// End finishes a lap by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.laps) {
		return
	}
	l := &t.laps[idx]
	l.Dur = time.Since(l.Start)
	l.Note = note
}

// Laps returns a copy of the recorded laps.
func (t *Timer) Laps() []Lap {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Lap, len(t.laps))
	copy(out, t.laps)
	return out
}

// Summary returns a human-readable table of all laps.
func (t *Timer) Summary() string {
	report := t.Report()
	width := len("total")
	for _, l := range report.Laps {
		width = max(width, len(l.Name))
	}

	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, l := range report.Laps {
		fmt.Fprintf(&sb, "  %-*s %7.2f ms", width, l.Name, l.DurationMS)
		if l.Note != "" {
			sb.WriteString("  // " + l.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-*s %7.2f ms\n", width, "total", report.TotalMS)
	return sb.String()
}

// LapReport is the serialisable form of a Lap.
type LapReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report aggregates the timer for export.
type Report struct {
	TotalMS float64     `json:"total_ms" msgpack:"total_ms"`
	Laps    []LapReport `json:"laps" msgpack:"laps"`
}

// Report формирует срез замеров и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	laps := t.Laps()
	if len(laps) == 0 {
		return Report{}
	}
	report := Report{Laps: make([]LapReport, len(laps))}
	var total time.Duration
	for i, l := range laps {
		total += l.Dur
		report.Laps[i] = LapReport{
			Name:       l.Name,
			DurationMS: durationToMillis(l.Dur),
			Note:       l.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
