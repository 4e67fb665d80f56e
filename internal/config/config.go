// Package config loads the optional anchorpatch.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "anchorpatch.toml"

// Config is the decoded configuration with defaults applied.
type Config struct {
	Path         string  `toml:"-"` // empty when defaults are used
	BackupSuffix string  `toml:"backup_suffix"`
	Patches      Patches `toml:"patches"`
	Diff         Diff    `toml:"diff"`
}

// Patches selects and parameterises catalog entries.
type Patches struct {
	Disable []string `toml:"disable"`
	// Verbose is the value written into the verbose property.
	Verbose bool `toml:"verbose"`
	// ContextLowMessage is "first,second"; empty leaves the message alone.
	ContextLowMessage string `toml:"context_low_message"`
}

// Diff controls the before/after diff printed for each applied patch.
type Diff struct {
	Enabled bool `toml:"enabled"`
	Context int  `toml:"context"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BackupSuffix: ".backup",
		Patches:      Patches{Verbose: true},
		Diff:         Diff{Enabled: true, Context: 50},
	}
}

// Disabled reports whether id is listed in [patches].disable.
func (p Patches) Disabled(id string) bool {
	for _, d := range p.Disable {
		if d == id {
			return true
		}
	}
	return false
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Keys the file sets but Config does not
// know are reported as errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("backup_suffix") && strings.TrimSpace(cfg.BackupSuffix) == "" {
		return Config{}, fmt.Errorf("%s: backup_suffix must not be empty", path)
	}
	if cfg.Diff.Context < 0 {
		return Config{}, fmt.Errorf("%s: [diff].context must not be negative", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit when given, otherwise the nearest FileName above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
