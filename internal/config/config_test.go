package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[patches]
disable = ["esc-interrupt"]
context_low_message = "Low context,left"

[diff]
context = 20
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Path:         path,
		BackupSuffix: ".backup",
		Patches: Patches{
			Disable:           []string{"esc-interrupt"},
			Verbose:           true,
			ContextLowMessage: "Low context,left",
		},
		Diff: Diff{Enabled: true, Context: 20},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Patches.Disabled("esc-interrupt") || cfg.Patches.Disabled("verbose-property") {
		t.Errorf("Disabled reports wrong ids")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[patches]\nverbos = false\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "patches.verbos") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []string{
		"backup_suffix = \" \"\n",
		"[diff]\ncontext = -1\n",
		"[diff\n",
	}
	for _, body := range tests {
		path := writeConfig(t, t.TempDir(), body)
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q) succeeded", body)
		}
	}
}

func TestResolveWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "backup_suffix = \".orig\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.BackupSuffix != ".orig" || cfg.Path != path {
		t.Errorf("got suffix %q from %q", cfg.BackupSuffix, cfg.Path)
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	// t.TempDir lives outside any anchorpatch.toml in a clean environment.
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("an anchorpatch.toml exists above the temp dir")
	}
	cfg, err := Resolve("", dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}
