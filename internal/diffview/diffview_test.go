package diffview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"anchorpatch/internal/source"
)

func change(t *testing.T, content string, start, end int, repl string) Change {
	t.Helper()
	before := source.FromString("cli.js", content)
	after, err := before.Splice(start, end, repl)
	if err != nil {
		t.Fatalf("Splice: %v", err)
	}
	return Change{Title: "Chrome subscription check", Before: before, After: after, Start: start, End: end, Replacement: repl}
}

func TestRenderPlain(t *testing.T) {
	content := `let qA=XV1(X.chrome)&&zB();if(qA)L("tengu_claude_in_chrome_setup")`
	start := strings.Index(content, "&&zB()")
	ch := change(t, content, start, start+len("&&zB()"), "")

	var buf bytes.Buffer
	if err := Render(&buf, ch, Options{Context: 8}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"--- Chrome subscription check diff at 1:21 ---",
		"OLD: .chrome)&&zB();if(qA)L",
		"NEW: .chrome);if(qA)L",
		"[-&&zB()-]",
		"(+0/-6 bytes)",
		"--- end diff ---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains escape codes:\n%q", out)
	}
}

func TestRenderDefaultContextIsBounded(t *testing.T) {
	content := strings.Repeat("a", 200) + "verbose:J" + strings.Repeat("b", 200)
	ch := change(t, content, 200, 209, "verbose:true")

	var buf bytes.Buffer
	if err := Render(&buf, ch, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "OLD:") {
			if got := strings.Count(line, "a"); got != DefaultContext {
				t.Errorf("OLD shows %d context bytes before, want %d", got, DefaultContext)
			}
		}
	}
	if !strings.Contains(buf.String(), "(+4/-1 bytes)") {
		t.Errorf("unexpected byte counts:\n%s", buf.String())
	}
}

func TestRenderColor(t *testing.T) {
	content := `{key:"esc"},...G?[`
	ch := change(t, content, 15, 16, "(false)")

	var buf bytes.Buffer
	if err := Render(&buf, ch, Options{Color: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[31mG\x1b[0m") {
		t.Errorf("removed text not red:\n%q", buf.String())
	}
	if !strings.Contains(buf.String(), "\x1b[32m(false)\x1b[0m") {
		t.Errorf("inserted text not green:\n%q", buf.String())
	}
}

func TestRenderEscapesNewlines(t *testing.T) {
	ch := change(t, "a\nb\nc", 2, 3, "B")
	var buf bytes.Buffer
	if err := Render(&buf, ch, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `OLD: a\nb\nc`) {
		t.Errorf("newlines not escaped:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderReportsWriteErrors(t *testing.T) {
	ch := change(t, "abc", 1, 2, "X")
	if err := Render(failingWriter{}, ch, Options{}); err == nil {
		t.Fatalf("expected write error")
	}
}
