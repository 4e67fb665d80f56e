package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"anchorpatch/internal/driver"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Copy the backup made by apply back over the bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		backup, err := driver.Restore(args[0], st.cfg.BackupSuffix)
		if err != nil {
			return err
		}
		if !st.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "♻️  Restored %s from %s\n", args[0], backup)
		}
		return nil
	},
}
