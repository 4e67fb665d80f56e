package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"anchorpatch/internal/driver"
	"anchorpatch/internal/report"
)

var (
	checkJobs     int
	checkCacheDir string
	checkReport   string
)

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "bundles checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().StringVar(&checkCacheDir, "cache-dir", "", "reuse reports for bundles already checked")
	checkCmd.Flags().StringVar(&checkReport, "report", "", "also write the reports to a .json or .msgpack file")
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Dry-run the patches over one or more bundles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		specs, err := st.specs()
		if err != nil {
			return err
		}

		var cache *driver.ReportCache
		if checkCacheDir != "" {
			if cache, err = driver.OpenReportCache(checkCacheDir); err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
		}

		results, err := driver.Check(cmd.Context(), args, driver.CheckOptions{
			Specs:     specs,
			Selection: patchSelection(st.cfg.Patches, specs),
			Cache:     cache,
			Jobs:      checkJobs,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		opts := report.Options{Color: useColor(cmd, os.Stdout), ShowPath: true}
		reports := make([]report.Report, 0, len(results))
		failed := 0
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if r.Err != nil {
				failed++
				fmt.Fprintf(out, "❌ %v\n", r.Err)
				continue
			}
			if err := report.Summary(out, r.Report, opts); err != nil {
				return err
			}
			if r.Cached && !st.quiet {
				fmt.Fprintln(out, "   (cached)")
			}
			reports = append(reports, r.Report)
		}

		if checkReport != "" {
			if err := report.Export(checkReport, reports); err != nil {
				return err
			}
		}
		if failed > 0 {
			dumpTrace(cmd)
			return fmt.Errorf("%d of %d bundles could not be read", failed, len(results))
		}
		return nil
	},
}
