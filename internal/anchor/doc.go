// Package anchor locates constructs inside minified text using textual anchors.
//
// A Locator is a pure function of a source.Buffer. It never mutates the buffer
// and never performs I/O; it either returns a Location whose Span belongs to
// the buffer's snapshot, or a soft miss error (ErrAnchorNotFound or
// ErrPatternMismatch).
//
// # Strategies
//
//   - Structural: coarse regexp, then a fine regexp inside its match.
//   - Capture: literal template with one capture group for a renamed identifier.
//   - EnclosingDecl: backward scan within a window for a declaration keyword,
//     validated by a marker between the keyword and the anchor.
//   - Within: narrow pattern inside a span produced by another Locator.
//   - FirstOf: ordered alternatives (new shape, then legacy shape).
//   - BackwardCapture: backward window plus a capture group naming only the
//     removable clause.
//
// Offsets are bytes. A Location must not be reused once the buffer it was
// computed against has been replaced.
package anchor
