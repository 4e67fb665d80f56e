package anchor

import (
	"regexp"
	"strings"

	"anchorpatch/internal/source"
)

// Decl configures EnclosingDecl.
type Decl struct {
	Anchor  string // stable literal inside the construct
	Keyword string // declaration token searched backward, e.g. "function "
	Marker  string // independent literal that must follow the keyword
	Window  int    // bytes scanned backward from Anchor
	Tail    int    // bytes past Anchor included in the validated span
}

// EnclosingDecl scans backward from Anchor for Keyword. A candidate must lie
// wholly inside [anchor-Window, anchor) and is valid when Marker occurs wholly
// inside [candidate, anchor+Tail). The valid candidate closest to the anchor
// wins. The Location spans [candidate, anchor+Tail), clipped to the buffer.
func EnclosingDecl(d Decl) Locator {
	return func(buf *source.Buffer) (Location, error) {
		content := buf.Content
		anchorPos := strings.Index(content, d.Anchor)
		if anchorPos < 0 {
			return Location{}, missAnchor("%q not found", d.Anchor)
		}

		windowStart := max(anchorPos-d.Window, 0)
		limit := min(anchorPos+d.Tail, len(content))
		backward := content[windowStart:anchorPos]

		best := -1
		for off := 0; off < len(backward); {
			i := strings.Index(backward[off:], d.Keyword)
			if i < 0 {
				break
			}
			candidate := windowStart + off + i
			if strings.Contains(content[candidate:limit], d.Marker) {
				best = candidate
			}
			off += i + len(d.Keyword)
		}
		if best < 0 {
			return Location{}, missPattern("no %q containing %q within %d bytes before %q", d.Keyword, d.Marker, d.Window, d.Anchor)
		}
		return locationAt(buf, best, limit)
	}
}

// Pick selects which match of a windowed pattern is used.
type Pick uint8

const (
	PickFirst Pick = iota
	PickLast       // closest to the anchor when scanning backward
)

// Backward configures BackwardCapture.
type Backward struct {
	Anchor  string
	Window  int
	Pattern *regexp.Regexp
	Group   int // 0 selects the whole match
	Pick    Pick
}

// BackwardCapture anchors on a unique literal, matches Pattern inside the
// Window bytes preceding it and returns the span of Group only, so that a
// single clause can be removed or rewritten without touching the statement.
func BackwardCapture(b Backward) Locator {
	mustHaveGroup(b.Pattern, b.Group)
	return func(buf *source.Buffer) (Location, error) {
		content := buf.Content
		anchorPos := strings.Index(content, b.Anchor)
		if anchorPos < 0 {
			return Location{}, missAnchor("%q not found", b.Anchor)
		}
		windowStart := max(anchorPos-b.Window, 0)
		backward := content[windowStart:anchorPos]

		matches := b.Pattern.FindAllStringSubmatchIndex(backward, -1)
		var m []int
		for _, cand := range matches {
			if cand[2*b.Group] < 0 {
				continue
			}
			m = cand
			if b.Pick == PickFirst {
				break
			}
		}
		if m == nil {
			return Location{}, missPattern("no match for %s within %d bytes before %q", b.Pattern, b.Window, b.Anchor)
		}
		start := windowStart + m[2*b.Group]
		end := windowStart + m[2*b.Group+1]
		return capturedAt(buf, start, end, content[start:end])
	}
}

// Forward configures ForwardCapture.
type Forward struct {
	Anchor  *regexp.Regexp
	Window  int
	Pattern *regexp.Regexp
	Group   int
}

// ForwardCapture finds Anchor, then the first Pattern match inside the Window
// bytes starting at the anchor, and returns the span of Group.
func ForwardCapture(f Forward) Locator {
	mustHaveGroup(f.Pattern, f.Group)
	return func(buf *source.Buffer) (Location, error) {
		content := buf.Content
		a := f.Anchor.FindStringIndex(content)
		if a == nil {
			return Location{}, missAnchor("no match for %s", f.Anchor)
		}
		windowEnd := min(a[0]+f.Window, len(content))
		forward := content[a[0]:windowEnd]

		m := f.Pattern.FindStringSubmatchIndex(forward)
		if m == nil || m[2*f.Group] < 0 {
			return Location{}, missPattern("no match for %s within %d bytes after %s", f.Pattern, f.Window, f.Anchor)
		}
		start := a[0] + m[2*f.Group]
		end := a[0] + m[2*f.Group+1]
		return capturedAt(buf, start, end, content[start:end])
	}
}

// Spread configures SpreadCondition.
type Spread struct {
	Key             string // e.g. {key:"esc"}
	Companion       string // must follow Key within CompanionWindow bytes
	CompanionWindow int
}

// SpreadCondition locates the condition of a spread ternary
// "...COND?[ ... Key ... Companion ... ]". For every occurrence of Key that
// has Companion nearby it looks back for the nearest "..." and forward from it
// for the first '?'; the condition between them is returned.
func SpreadCondition(s Spread) Locator {
	const spread = "..."
	return func(buf *source.Buffer) (Location, error) {
		content := buf.Content
		seen := false
		for from := 0; from < len(content); {
			i := strings.Index(content[from:], s.Key)
			if i < 0 {
				break
			}
			keyPos := from + i
			from = keyPos + 1
			seen = true

			windowEnd := min(keyPos+s.CompanionWindow, len(content))
			if !strings.Contains(content[keyPos:windowEnd], s.Companion) {
				continue
			}
			spreadPos := strings.LastIndex(content[:keyPos], spread)
			if spreadPos < 0 {
				continue
			}
			q := strings.IndexByte(content[spreadPos:keyPos], '?')
			if q < 0 {
				continue
			}
			start := spreadPos + len(spread)
			end := spreadPos + q
			return capturedAt(buf, start, end, strings.TrimSpace(content[start:end]))
		}
		if !seen {
			return Location{}, missAnchor("%q not found", s.Key)
		}
		return Location{}, missPattern("no spread ternary before %q followed by %q", s.Key, s.Companion)
	}
}
