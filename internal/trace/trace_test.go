package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelOff, false},
		{"off", LevelOff, false},
		{"Error", LevelError, false},
		{" patch ", LevelPatch, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelOff.ShouldEmit(ScopeRun) {
		t.Errorf("off must not emit")
	}
	if !LevelPatch.ShouldEmit(ScopePatch) || LevelPatch.ShouldEmit(ScopeStep) {
		t.Errorf("patch level must stop at patch scope")
	}
	if !LevelError.ShouldEmit(ScopePatch) || LevelError.ShouldEmit(ScopeStep) {
		t.Errorf("error level must keep run and patch scopes for the ring")
	}
	if !LevelDebug.ShouldEmit(ScopeMatch) {
		t.Errorf("debug must emit everything")
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelStep, FormatText)

	run := Begin(tr, ScopeRun, "run:cli.js", 0)
	p := Begin(tr, ScopePatch, "patch:esc-interrupt", run.ID())
	p.WithExtra("state", "applied").End("")
	Point(tr, ScopeMatch, "candidate", "dropped", p.ID())
	run.End("1/1")

	out := buf.String()
	for _, want := range []string{"→ run:cli.js", "  ← patch:esc-interrupt {state=applied}", "← run:cli.js (1/1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "candidate") {
		t.Errorf("match scope leaked at step level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelRun, FormatNDJSON)
	Begin(tr, ScopeRun, "run", 0).End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], `"kind":"end"`) || !strings.Contains(lines[1], `"detail":"done"`) {
		t.Errorf("unexpected end event: %s", lines[1])
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelPatch)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePatch, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	var names []string
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Errorf("ring order = %s, want c,d,e", got)
	}
}

func TestDumpFindsRingInsideMulti(t *testing.T) {
	var stream, dump bytes.Buffer
	ring := NewRingTracer(8, LevelError)
	multi := NewMultiTracer(LevelError, NewStreamTracer(&stream, LevelError, FormatText), ring)

	Point(multi, ScopeRun, "io failure", "write", 0)

	ok, err := Dump(multi, &dump, FormatText)
	if err != nil || !ok {
		t.Fatalf("Dump = %v, %v", ok, err)
	}
	if !strings.Contains(dump.String(), "io failure (write)") {
		t.Errorf("dump missing event: %q", dump.String())
	}
	if stream.Len() != 0 {
		t.Errorf("error level must not stream, got %q", stream.String())
	}

	if ok, _ := Dump(Nop, &dump, FormatText); ok {
		t.Errorf("nop tracer has no ring")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not carried by context")
	}
	span := Begin(ring, ScopeRun, "run", 0)
	ctx = WithParent(ctx, span)
	if ParentFrom(ctx) != span.ID() {
		t.Errorf("ParentFrom = %d, want %d", ParentFrom(ctx), span.ID())
	}
}
