package catalog

import "regexp"

// Every literal and pattern the catalog matches against the bundle. Upstream
// releases rename identifiers freely; only the strings below are assumed to
// survive, so a broken patch is fixed here and nowhere else.

// Verbose property of the spinner element.
var (
	verboseCall = regexp.MustCompile(`createElement\([$\w]+,\{[^}]+spinnerTip[^}]+overrideMessage[^}]+\}`)
	verboseProp = regexp.MustCompile(`verbose:[^,}]+`)
)

// Context low warning guard.
const (
	contextLowAnchor  = "Context low ("
	contextLowKeyword = "function "
	contextLowMarker  = "tokenUsage:"
	contextLowWindow  = 800 // the enclosing function is ~470 bytes
	contextLowTail    = 100
)

var contextLowGuard = regexp.MustCompile(`if\([^)]+\)return null`)

// Context low message literal; group 1 is the percentage expression.
var contextLowMessage = regexp.MustCompile(`"Context low \(",([^,]+),"% remaining\) · Run /compact to compact & continue"`)

// ESC interrupt hint. The current shape assigns "esc" and "interrupt" to
// variables and spreads a ternary shortly after; older bundles inline the key.
// The patched condition "(false)" must still match, or a second run moves on
// to the next spread in the window.
var (
	escAnchor = regexp.MustCompile(`="esc",\w+="interrupt"`)
	escSpread = regexp.MustCompile(`\.\.\.(\w+|\(false\))\?\[`)
)

const (
	escWindow          = 800
	escLegacyKey       = `{key:"esc"}`
	escLegacyCompanion = `"to interrupt"`
	escLegacyWindow    = 200
)

// Claude in Chrome subscription gates.
const (
	chromeSetupAnchor   = "tengu_claude_in_chrome_setup"
	chromeSetupWindow   = 300
	chromeCommandAnchor = `"Claude in Chrome requires a claude.ai subscription."`
	chromeCommandWindow = 100
	chromeStartupAnchor = `key:"chrome-requires-subscription"`
	chromeStartupWindow = 150
)

// Both guards also accept their replacement so that, with PickLast, the
// already patched guard stays the closest match.
var (
	chromeSetupCheck   = regexp.MustCompile(`let\s*\w+=\w+\(\w+\.chrome\)(&&\w+\(\))`)
	chromeCommandGuard = regexp.MustCompile(`(!\w+|\bfalse)&&`)
	chromeStartupGuard = regexp.MustCompile(`if\((!\w+\(\)|false)\)\{`)
)
