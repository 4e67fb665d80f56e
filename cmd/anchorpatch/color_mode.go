package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type colorSetting string

const (
	colorAuto colorSetting = "auto"
	colorOn   colorSetting = "on"
	colorOff  colorSetting = "off"
)

func readColorMode(value string) (colorSetting, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func colorMode(cmd *cobra.Command) (colorSetting, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	return readColorMode(value)
}

// useColor decides colouring for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := colorMode(cmd)
	if err != nil {
		return false
	}
	return mode == colorOn || (mode == colorAuto && isTerminal(f))
}
