package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"anchorpatch/internal/anchor"
	"anchorpatch/internal/config"
	"anchorpatch/internal/patch"
	"anchorpatch/internal/source"
)

// Fragments of a minified bundle, one per patch target.
const (
	verboseFrag = `R.createElement(ZA,{mode:H,spinnerTip:Q,verbose:J,overrideMessage:W})`
	contextFrag = `function aZ1({tokenUsage:A,model:B}){let Q=x();if(!Q||A<Q.threshold)return null;` +
		`return R.createElement(T,{color:"warning"},"Context low (",Y,"% remaining) · Run /compact to compact & continue")}`
	escNewFrag    = `SA="esc",_A="interrupt";function kB(O){return[...O?[R.createElement(K,{shortcut:SA,action:_A})]:[]]}`
	escLegacyFrag = `function kB(G){return[...G?[R.createElement(K,{key:"esc"},"esc"),"to interrupt"]:[]]}`
	chromeSetup   = `let qA=XV1(X.chrome)&&zB();if(qA)L("tengu_claude_in_chrome_setup",{})`
	chromeCommand = `if(!G&&P)return R.createElement(M,{color:"error"},"Claude in Chrome requires a claude.ai subscription.")`
	chromeStartup = `if(!zB()){A({key:"chrome-requires-subscription",text:"Requires a subscription"})}`
)

func bundle(frags ...string) *source.Buffer {
	return source.FromString("cli.js", strings.Join(frags, ";\n"))
}

func fullBundle() *source.Buffer {
	return bundle(verboseFrag, contextFrag, escNewFrag, chromeSetup, chromeCommand, chromeStartup)
}

func withMessage() config.Patches {
	p := config.Default().Patches
	p.ContextLowMessage = "Low context,left"
	return p
}

func ids(specs []patch.Spec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.ID
	}
	return out
}

func TestBuildOrder(t *testing.T) {
	specs, err := Build(config.Default().Patches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{
		VerboseProperty, ContextLowWarnings, EscInterrupt,
		ChromeSubscriptionCheck, ChromeCommandMessage, ChromeStartupNotification,
	}
	if diff := cmp.Diff(want, ids(specs)); diff != "" {
		t.Errorf("default order (-want +got):\n%s", diff)
	}

	specs, err = Build(withMessage())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := ids(specs); len(got) != 7 || got[2] != ContextLowMessage {
		t.Errorf("message patch not third: %v", got)
	}
}

func TestBuildDisable(t *testing.T) {
	cfg := config.Default().Patches
	cfg.Disable = []string{EscInterrupt, ChromeStartupNotification}
	specs, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, id := range ids(specs) {
		if id == EscInterrupt || id == ChromeStartupNotification {
			t.Errorf("disabled patch %s still built", id)
		}
	}

	cfg.Disable = []string{"no-such-patch"}
	if _, err := Build(cfg); err == nil {
		t.Fatalf("unknown id accepted")
	}
}

func TestCatalogPatchesBundle(t *testing.T) {
	specs, err := Build(withMessage())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	final, outcomes := patch.Run(context.Background(), fullBundle(), specs, patch.Options{})

	for _, o := range outcomes {
		if !o.Succeeded {
			t.Errorf("%s: %v (%s)", o.ID, o.State, o.Detail)
		}
	}
	want := strings.Join([]string{
		`R.createElement(ZA,{mode:H,spinnerTip:Q,verbose:true,overrideMessage:W})`,
		`function aZ1({tokenUsage:A,model:B}){let Q=x();if(true)return null;` +
			`return R.createElement(T,{color:"warning"},"Low context",Y,"left")}`,
		`SA="esc",_A="interrupt";function kB(O){return[...(false)?[R.createElement(K,{shortcut:SA,action:_A})]:[]]}`,
		`let qA=XV1(X.chrome);if(qA)L("tengu_claude_in_chrome_setup",{})`,
		`if(false&&P)return R.createElement(M,{color:"error"},"Claude in Chrome requires a claude.ai subscription.")`,
		`if(false){A({key:"chrome-requires-subscription",text:"Requires a subscription"})}`,
	}, ";\n")
	if diff := cmp.Diff(want, final.Content); diff != "" {
		t.Errorf("patched bundle (-want +got):\n%s", diff)
	}
}

func TestCatalogSecondRunChangesNothing(t *testing.T) {
	for _, cfg := range []config.Patches{config.Default().Patches, withMessage()} {
		specs, err := Build(cfg)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		once, _ := patch.Run(context.Background(), fullBundle(), specs, patch.Options{})
		twice, outcomes := patch.Run(context.Background(), once, specs, patch.Options{})

		if twice.Content != once.Content {
			t.Errorf("second run altered the bundle")
		}
		if n := patch.Applied(outcomes); n != 0 {
			t.Errorf("second run applied %d patches", n)
		}
	}
}

// Each guard here has an earlier look-alike inside the search window.
const (
	escNewTwoSpreads = `SA="esc",_A="interrupt";function kB(O,P){return[...O?[R.createElement(K,{shortcut:SA,action:_A})]:[],...P?[h(1)]:[]]}`
	chromeCommandTwo = `!a&&x();if(!G&&P)return R.createElement(M,{color:"error"},"Claude in Chrome requires a claude.ai subscription.")`
	chromeStartupTwo = `if(!qq()){z()}if(!zB()){A({key:"chrome-requires-subscription",text:"Requires a subscription"})}`
)

func TestCatalogSecondRunKeepsNeighbours(t *testing.T) {
	specs, err := Build(config.Default().Patches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	buf := bundle(verboseFrag, contextFrag, escNewTwoSpreads, chromeSetup, chromeCommandTwo, chromeStartupTwo)

	once, _ := patch.Run(context.Background(), buf, specs, patch.Options{})
	for _, want := range []string{
		`return[...(false)?[R.createElement(K,{shortcut:SA,action:_A})]:[],...P?[h(1)]:[]]`,
		`!a&&x();if(false&&P)return`,
		`if(!qq()){z()}if(false){A(`,
	} {
		if !strings.Contains(once.Content, want) {
			t.Errorf("first run: missing %q in\n%s", want, once.Content)
		}
	}

	twice, outcomes := patch.Run(context.Background(), once, specs, patch.Options{})
	if diff := cmp.Diff(once.Content, twice.Content); diff != "" {
		t.Errorf("second run altered the bundle (-first +second):\n%s", diff)
	}
	for _, o := range outcomes {
		switch o.ID {
		case EscInterrupt, ChromeCommandMessage, ChromeStartupNotification:
			if o.State != patch.StateFailed || o.Detail != patch.DetailAlreadyApplied {
				t.Errorf("%s: state %v detail %q, want already applied", o.ID, o.State, o.Detail)
			}
		}
	}
}

func TestEscInterruptShapes(t *testing.T) {
	esc, ok := Lookup(EscInterrupt)
	if !ok {
		t.Fatalf("esc entry missing")
	}
	spec := esc.Spec(config.Default().Patches)

	tests := []struct {
		name    string
		frag    string
		capture string
	}{
		{"new", escNewFrag, "O"},
		{"legacy", escLegacyFrag, "G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bundle(verboseFrag, tt.frag)
			loc, err := spec.Locate(buf)
			if err != nil {
				t.Fatalf("locate: %v", err)
			}
			if loc.Text != tt.capture || loc.Capture != tt.capture {
				t.Errorf("located %q (capture %q), want %q", loc.Text, loc.Capture, tt.capture)
			}
			if buf.Content[loc.Start()-3:loc.Start()] != "..." {
				t.Errorf("condition does not follow a spread")
			}
		})
	}

	_, err := spec.Locate(bundle(verboseFrag))
	if !errors.Is(err, anchor.ErrAnchorNotFound) {
		t.Errorf("expected anchor miss without either shape, got %v", err)
	}
}

func TestVerboseValueFollowsConfig(t *testing.T) {
	cfg := config.Default().Patches
	cfg.Verbose = false
	e, _ := Lookup(VerboseProperty)

	next, out := patch.Step(context.Background(), bundle(verboseFrag), e.Spec(cfg))
	if !out.Succeeded {
		t.Fatalf("verbose patch failed: %s", out.Detail)
	}
	if !strings.Contains(next.Content, "verbose:false,") {
		t.Errorf("content = %q", next.Content)
	}
}

func TestContextLowWarningsNeedsMarker(t *testing.T) {
	e, _ := Lookup(ContextLowWarnings)
	frag := strings.Replace(contextFrag, "tokenUsage:", "usage:", 1)

	_, err := e.Spec(config.Default().Patches).Locate(bundle(frag))
	if !errors.Is(err, anchor.ErrPatternMismatch) {
		t.Fatalf("expected pattern mismatch, got %v", err)
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct{ in, first, second string }{
		{"Low context,left", "Low context", "left"},
		{"no comma", "no comma", ""},
		{"a,b,c", "a", "b,c"},
	}
	for _, tt := range tests {
		first, second := SplitMessage(tt.in)
		if first != tt.first || second != tt.second {
			t.Errorf("SplitMessage(%q) = %q, %q", tt.in, first, second)
		}
	}
}

func TestEntriesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Entries() {
		if seen[e.ID] {
			t.Errorf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" || e.Strategy == "" {
			t.Errorf("%s: missing name or strategy", e.ID)
		}
	}
}
