package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"anchorpatch/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the patches in run order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if _, err := st.specs(); err != nil {
			return err
		}

		entries := catalog.Entries()
		idWidth, nameWidth := 0, 0
		for _, e := range entries {
			idWidth = max(idWidth, runewidth.StringWidth(e.ID))
			nameWidth = max(nameWidth, runewidth.StringWidth(e.Name))
		}

		out := cmd.OutOrStdout()
		for _, e := range entries {
			state := "on "
			switch {
			case st.cfg.Patches.Disabled(e.ID):
				state = "off"
			case !e.Enabled(st.cfg.Patches):
				state = "-- "
			}
			fmt.Fprintf(out, "%s  %s  %s  %s\n",
				state,
				runewidth.FillRight(e.ID, idWidth),
				runewidth.FillRight(e.Name, nameWidth),
				e.Strategy)
		}
		return nil
	},
}
