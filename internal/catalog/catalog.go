// Package catalog defines the patches anchorpatch knows how to apply, in the
// order they run.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"anchorpatch/internal/anchor"
	"anchorpatch/internal/config"
	"anchorpatch/internal/patch"
)

// Patch IDs.
const (
	VerboseProperty           = "verbose-property"
	ContextLowWarnings        = "context-low-warnings"
	ContextLowMessage         = "context-low-message"
	EscInterrupt              = "esc-interrupt"
	ChromeSubscriptionCheck   = "chrome-subscription-check"
	ChromeCommandMessage      = "chrome-command-message"
	ChromeStartupNotification = "chrome-startup-notification"
)

// Entry is one catalog row.
type Entry struct {
	ID       string
	Name     string
	Strategy string
	// Optional entries run only when their setting is configured.
	Optional bool

	locate anchor.Locator
	render func(cfg config.Patches) func(anchor.Location) string
	wanted func(cfg config.Patches) bool
}

func constant(s string) func(config.Patches) func(anchor.Location) string {
	return func(config.Patches) func(anchor.Location) string {
		return func(anchor.Location) string { return s }
	}
}

var entries = []Entry{
	{
		ID:       VerboseProperty,
		Name:     "Verbose property",
		Strategy: "structural",
		locate:   anchor.Structural(verboseCall, verboseProp),
		render: func(cfg config.Patches) func(anchor.Location) string {
			value := "verbose:" + strconv.FormatBool(cfg.Verbose)
			return func(anchor.Location) string { return value }
		},
	},
	{
		ID:       ContextLowWarnings,
		Name:     "Context low warnings",
		Strategy: "enclosing-decl+within",
		locate: anchor.Within(anchor.EnclosingDecl(anchor.Decl{
			Anchor:  contextLowAnchor,
			Keyword: contextLowKeyword,
			Marker:  contextLowMarker,
			Window:  contextLowWindow,
			Tail:    contextLowTail,
		}), contextLowGuard),
		render: constant("if(true)return null"),
	},
	{
		ID:       ContextLowMessage,
		Name:     "Context low message",
		Strategy: "capture",
		Optional: true,
		locate:   anchor.Capture(contextLowMessage, 1),
		render: func(cfg config.Patches) func(anchor.Location) string {
			first, second := SplitMessage(cfg.ContextLowMessage)
			return func(loc anchor.Location) string {
				return strconv.Quote(first) + "," + loc.Capture + "," + strconv.Quote(second)
			}
		},
		wanted: func(cfg config.Patches) bool { return cfg.ContextLowMessage != "" },
	},
	{
		ID:       EscInterrupt,
		Name:     "ESC interrupt display",
		Strategy: "first-of(forward, spread)",
		locate: anchor.FirstOf(
			anchor.ForwardCapture(anchor.Forward{
				Anchor:  escAnchor,
				Window:  escWindow,
				Pattern: escSpread,
				Group:   1,
			}),
			anchor.SpreadCondition(anchor.Spread{
				Key:             escLegacyKey,
				Companion:       escLegacyCompanion,
				CompanionWindow: escLegacyWindow,
			}),
		),
		render: constant("(false)"),
	},
	{
		ID:       ChromeSubscriptionCheck,
		Name:     "Chrome subscription check",
		Strategy: "backward-capture",
		locate: anchor.BackwardCapture(anchor.Backward{
			Anchor:  chromeSetupAnchor,
			Window:  chromeSetupWindow,
			Pattern: chromeSetupCheck,
			Group:   1,
			Pick:    anchor.PickFirst,
		}),
		render: constant(""),
	},
	{
		ID:       ChromeCommandMessage,
		Name:     "/chrome command message",
		Strategy: "backward-capture",
		locate: anchor.BackwardCapture(anchor.Backward{
			Anchor:  chromeCommandAnchor,
			Window:  chromeCommandWindow,
			Pattern: chromeCommandGuard,
			Group:   0,
			Pick:    anchor.PickLast,
		}),
		render: constant("false&&"),
	},
	{
		ID:       ChromeStartupNotification,
		Name:     "Chrome startup notification",
		Strategy: "backward-capture",
		locate: anchor.BackwardCapture(anchor.Backward{
			Anchor:  chromeStartupAnchor,
			Window:  chromeStartupWindow,
			Pattern: chromeStartupGuard,
			Group:   1,
			Pick:    anchor.PickLast,
		}),
		render: constant("false"),
	},
}

// Entries returns the catalog in run order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the entry with the given ID.
func Lookup(id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Spec binds the entry to cfg.
func (e Entry) Spec(cfg config.Patches) patch.Spec {
	return patch.Spec{ID: e.ID, Name: e.Name, Locate: e.locate, Render: e.render(cfg)}
}

// Enabled reports whether the entry runs under cfg.
func (e Entry) Enabled(cfg config.Patches) bool {
	if cfg.Disabled(e.ID) {
		return false
	}
	return e.wanted == nil || e.wanted(cfg)
}

// Build returns the specs enabled by cfg in run order. Unknown IDs in
// cfg.Disable are an error.
func Build(cfg config.Patches) ([]patch.Spec, error) {
	for _, id := range cfg.Disable {
		if _, ok := Lookup(id); !ok {
			return nil, fmt.Errorf("unknown patch id %q in [patches].disable", id)
		}
	}
	specs := make([]patch.Spec, 0, len(entries))
	for _, e := range entries {
		if e.Enabled(cfg) {
			specs = append(specs, e.Spec(cfg))
		}
	}
	return specs, nil
}

// SplitMessage splits a "first,second" message at its first comma. A message
// without a comma becomes the first part.
func SplitMessage(msg string) (first, second string) {
	first, second, _ = strings.Cut(msg, ",")
	return first, second
}
