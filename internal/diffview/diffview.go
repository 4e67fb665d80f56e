// Package diffview prints a bounded before/after window around one applied
// patch. It is display only and never feeds back into patch outcomes.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"anchorpatch/internal/source"
)

// DefaultContext is the number of bytes shown on each side of a change.
const DefaultContext = 50

// Change is one applied splice.
type Change struct {
	Title       string
	Before      *source.Buffer
	After       *source.Buffer
	Start, End  int // replaced range in Before
	Replacement string
}

// Options controls rendering.
type Options struct {
	Context int // bytes of context; <= 0 selects DefaultContext
	Color   bool
}

type palette struct {
	removed *color.Color
	added   *color.Color
	label   lipgloss.Style
	title   lipgloss.Style
}

func newPalette(enabled bool) palette {
	p := palette{
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		label:   lipgloss.NewStyle().Width(5),
		title:   lipgloss.NewStyle(),
	}
	if enabled {
		p.removed.EnableColor()
		p.added.EnableColor()
		p.label = p.label.Bold(true).Foreground(lipgloss.Color("8"))
		p.title = p.title.Bold(true)
	} else {
		p.removed.DisableColor()
		p.added.DisableColor()
	}
	return p
}

var escaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// Render writes the diff for ch to w.
func Render(w io.Writer, ch Change, opts Options) error {
	radius := opts.Context
	if radius <= 0 {
		radius = DefaultContext
	}
	p := newPalette(opts.Color)

	oldBefore, oldText, oldAfter := ch.Before.Window(ch.Start, ch.End, radius)
	newStart := ch.Start
	newBefore, newText, newAfter := ch.After.Window(newStart, newStart+len(ch.Replacement), radius)

	inline, added, removed := inlineDiff(oldText, newText, p)

	where := ""
	if off, err := safecast.Conv[uint32](ch.Start); err == nil {
		where = " at " + ch.Before.Position(off).String()
	}

	ew := &errWriter{w: w}
	ew.printf("%s\n", p.title.Render(fmt.Sprintf("--- %s diff%s ---", ch.Title, where)))
	ew.printf("%s%s%s%s\n", p.label.Render("OLD:"), escaper.Replace(oldBefore), p.removed.Sprint(escaper.Replace(oldText)), escaper.Replace(oldAfter))
	ew.printf("%s%s%s%s\n", p.label.Render("NEW:"), escaper.Replace(newBefore), p.added.Sprint(escaper.Replace(newText)), escaper.Replace(newAfter))
	ew.printf("%s%s  (+%d/-%d bytes)\n", p.label.Render(""), inline, added, removed)
	ew.printf("%s\n", p.title.Render("--- end diff ---"))
	return ew.err
}

// inlineDiff renders a character diff of the replaced range as
// [-removed-]{+added+} and counts the bytes on each side.
func inlineDiff(oldText, newText string, p palette) (out string, added, removed int) {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldText, newText, false))

	var sb strings.Builder
	for _, d := range diffs {
		text := escaper.Replace(d.Text)
		switch d.Type {
		case diffpatch.DiffEqual:
			sb.WriteString(text)
		case diffpatch.DiffDelete:
			removed += len(d.Text)
			sb.WriteString(p.removed.Sprint("[-" + text + "-]"))
		case diffpatch.DiffInsert:
			added += len(d.Text)
			sb.WriteString(p.added.Sprint("{+" + text + "+}"))
		}
	}
	return sb.String(), added, removed
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
