package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"anchorpatch/internal/catalog"
	"anchorpatch/internal/config"
	"anchorpatch/internal/patch"
	"anchorpatch/internal/version"
)

type settings struct {
	cfg     config.Config
	quiet   bool
	timings bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := config.Resolve(cfgPath, ".")
	if err != nil {
		return settings{}, err
	}
	return settings{cfg: cfg, quiet: quiet, timings: timings}, nil
}

// specs builds the enabled catalog for the loaded configuration.
func (s settings) specs() ([]patch.Spec, error) {
	specs, err := catalog.Build(s.cfg.Patches)
	if err != nil {
		name := s.cfg.Path
		if name == "" {
			name = config.FileName
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return specs, nil
}

// patchSelection lists everything that changes patch outcomes, for cache keys.
func patchSelection(cfg config.Patches, specs []patch.Spec) []string {
	sel := []string{
		"version=" + version.Current().Version,
		"verbose=" + strconv.FormatBool(cfg.Verbose),
		"message=" + cfg.ContextLowMessage,
	}
	for _, s := range specs {
		sel = append(sel, s.ID)
	}
	return sel
}
