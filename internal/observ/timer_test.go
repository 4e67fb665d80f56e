package observ

import (
	"strings"
	"testing"
)

func TestTimerRecordsLapsInOrder(t *testing.T) {
	tm := NewTimer()
	a := tm.Begin("verbose-property")
	b := tm.Begin("esc-interrupt")
	tm.End(b, "skipped")
	tm.End(a, "")
	tm.End(42, "ignored")

	laps := tm.Laps()
	if len(laps) != 2 {
		t.Fatalf("expected 2 laps, got %d", len(laps))
	}
	if laps[0].Name != "verbose-property" || laps[1].Note != "skipped" {
		t.Errorf("unexpected laps: %+v", laps)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "esc-interrupt", "// skipped", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if got := tm.Report(); len(got.Laps) != 0 {
		t.Errorf("nil timer reported laps: %+v", got)
	}
}
