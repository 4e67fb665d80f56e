package anchor

import (
	"errors"
	"fmt"
	"regexp"

	"anchorpatch/internal/source"
)

// Match returns the first match of re.
func Match(re *regexp.Regexp) Locator {
	return func(buf *source.Buffer) (Location, error) {
		idx := re.FindStringIndex(buf.Content)
		if idx == nil {
			return Location{}, missAnchor("no match for %s", re)
		}
		return locationAt(buf, idx[0], idx[1])
	}
}

// Capture matches a fixed template with one group standing in for a renamed
// identifier. The Location spans the whole match; the group becomes Capture.
func Capture(re *regexp.Regexp, group int) Locator {
	mustHaveGroup(re, group)
	return func(buf *source.Buffer) (Location, error) {
		m := re.FindStringSubmatchIndex(buf.Content)
		if m == nil {
			return Location{}, missAnchor("no match for %s", re)
		}
		if m[2*group] < 0 {
			return Location{}, missPattern("group %d of %s did not participate", group, re)
		}
		return capturedAt(buf, m[0], m[1], buf.Content[m[2*group]:m[2*group+1]])
	}
}

// Structural finds the first match of the coarse pattern outer and then the
// first match of inner inside it. Both must hit within the outer span, so an
// inner pattern can never match across unrelated call expressions.
func Structural(outer, inner *regexp.Regexp) Locator {
	return Within(Match(outer), inner)
}

// Within searches the span found by outer for inner and returns the inner
// match in absolute offsets. A missing inner match is a pattern mismatch;
// there is no fuzzy fallback.
// When inner has a capture group, its first group becomes Capture.
func Within(outer Locator, inner *regexp.Regexp) Locator {
	return func(buf *source.Buffer) (Location, error) {
		scope, err := outer(buf)
		if err != nil {
			return Location{}, err
		}
		m := inner.FindStringSubmatchIndex(scope.Text)
		if m == nil {
			return Location{}, missPattern("no match for %s within %d-%d", inner, scope.Span.Start, scope.Span.End)
		}
		span, err := scope.Span.Sub(m[0], m[1])
		if err != nil {
			return Location{}, err
		}
		loc := Location{Span: span, Text: scope.Text[m[0]:m[1]]}
		if inner.NumSubexp() > 0 && m[2] >= 0 {
			loc.Capture = scope.Text[m[2]:m[3]]
			loc.HasCapture = true
		}
		return loc, nil
	}
}

// FirstOf tries each locator in order and returns the first hit.
// Callers cannot tell which alternative fired.
func FirstOf(locators ...Locator) Locator {
	return func(buf *source.Buffer) (Location, error) {
		miss := &MissError{Kind: MissAnchor}
		for i, locate := range locators {
			loc, err := locate(buf)
			if err == nil {
				return loc, nil
			}
			if !IsMiss(err) {
				return Location{}, err
			}
			if errors.Is(err, ErrPatternMismatch) {
				miss.Kind = MissPattern
			}
			if i > 0 {
				miss.Step += "; "
			}
			miss.Step += err.Error()
		}
		return Location{}, miss
	}
}

func mustHaveGroup(re *regexp.Regexp, group int) {
	if group < 0 || group > re.NumSubexp() {
		panic(fmt.Errorf("anchor: pattern %s has no group %d", re, group))
	}
}
