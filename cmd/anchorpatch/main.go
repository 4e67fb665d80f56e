package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"anchorpatch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "anchorpatch",
	Short: "Patch a minified CLI bundle by textual anchors",
	Long: `anchorpatch locates a fixed set of constructs in a minified JavaScript
bundle by stable textual anchors, splices replacements in place and reports
which patches applied.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

// traceCleanup is set by preRun and flushed once the command returns.
var traceCleanup = func() {}

func preRun(cmd *cobra.Command, _ []string) error {
	if _, err := colorMode(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress diffs and hints")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to anchorpatch.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "error", "trace level (off|error|run|patch|step|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 1024, "events kept in ring mode")
}

// main executes the root command. Any returned error exits with status 1;
// anchor misses never do.
func main() {
	rootCmd.Version = version.Current().Version

	err := rootCmd.Execute()
	traceCleanup()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
