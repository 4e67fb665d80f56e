package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"anchorpatch/internal/diffview"
	"anchorpatch/internal/driver"
	"anchorpatch/internal/observ"
	"anchorpatch/internal/report"
)

var (
	applyDryRun bool
	applyReport string
	applyNoDiff bool
)

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "report what would change without writing or backing up")
	applyCmd.Flags().StringVar(&applyReport, "report", "", "also write the report to a .json or .msgpack file")
	applyCmd.Flags().BoolVar(&applyNoDiff, "no-diff", false, "do not print per-patch diffs")
}

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Back up and patch a bundle in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		specs, err := st.specs()
		if err != nil {
			return err
		}

		path := args[0]
		out := cmd.OutOrStdout()
		color := useColor(cmd, os.Stdout)

		opts := driver.Options{
			Specs:        specs,
			BackupSuffix: st.cfg.BackupSuffix,
			DryRun:       applyDryRun,
		}
		if st.timings {
			opts.Timer = observ.NewTimer()
		}
		if !st.quiet && !applyNoDiff && st.cfg.Diff.Enabled {
			opts.DiffOut = out
			opts.Diff = diffview.Options{Context: st.cfg.Diff.Context, Color: color}
		}

		res, runErr := driver.PatchFile(cmd.Context(), path, opts)
		if res == nil {
			dumpTrace(cmd)
			return runErr
		}

		if opts.Timer != nil {
			timings := opts.Timer.Report()
			res.Report.Timings = &timings
		}
		if err := report.Summary(out, res.Report, report.Options{Color: color}); err != nil {
			return err
		}
		if !st.quiet && runErr == nil {
			printApplyHints(out, path, res.Report)
		}
		if opts.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
		}
		if applyReport != "" {
			if err := report.Export(applyReport, []report.Report{res.Report}); err != nil {
				return err
			}
		}
		if runErr != nil {
			dumpTrace(cmd)
			return runErr
		}
		return nil
	},
}

func printApplyHints(out io.Writer, path string, r report.Report) {
	switch {
	case r.DryRun:
		fmt.Fprintln(out, "🔍 Dry run: nothing was written")
	case r.Written:
		fmt.Fprintf(out, "💾 Backup saved to %s\n", r.Backup)
		fmt.Fprintf(out, "   To restore: anchorpatch restore %s\n", path)
	default:
		fmt.Fprintf(out, "ℹ️  %s left unchanged\n", path)
	}
}
