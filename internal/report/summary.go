package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Options controls Summary.
type Options struct {
	Color       bool
	ShowPath    bool // print the bundle path in the header
	DetailWidth int  // truncate failure details; <= 0 selects 96
}

const (
	markApplied = "✅"
	markFailed  = "❌"
	markPartial = "⚠️"
)

// Summary prints the per-patch results of r.
func Summary(w io.Writer, r Report, opts Options) error {
	header := "📊 Patch Results:"
	if opts.ShowPath {
		header = fmt.Sprintf("📊 Patch Results: %s", r.Path)
	}
	headerStyle := lipgloss.NewStyle()
	detailStyle := lipgloss.NewStyle()
	okColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	if opts.Color {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("7"))
		detailStyle = detailStyle.Foreground(lipgloss.Color("8"))
		okColor.EnableColor()
		warnColor.EnableColor()
	} else {
		okColor.DisableColor()
		warnColor.DisableColor()
	}
	detailWidth := opts.DetailWidth
	if detailWidth <= 0 {
		detailWidth = 96
	}

	nameWidth := 0
	for _, e := range r.Patches {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Name))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	for _, e := range r.Patches {
		mark := markApplied
		if !e.Succeeded {
			mark = markFailed
		}
		if e.Succeeded || e.Detail == "" {
			fmt.Fprintf(&b, "  %s %s\n", mark, e.Name)
			continue
		}
		name := runewidth.FillRight(e.Name, nameWidth)
		fmt.Fprintf(&b, "  %s %s  %s\n", mark, name, detailStyle.Render(truncate(e.Detail, detailWidth)))
	}
	b.WriteString("\n")
	switch {
	case r.Total == 0:
		b.WriteString(warnColor.Sprint(markPartial + "  No patches enabled"))
	case r.AllApplied():
		b.WriteString(okColor.Sprintf("%s All %d patches applied successfully!", markApplied, r.Total))
	default:
		b.WriteString(warnColor.Sprintf("%s  %d/%d patches applied successfully", markPartial, r.Applied, r.Total))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
