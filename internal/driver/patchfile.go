package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"anchorpatch/internal/diffview"
	"anchorpatch/internal/observ"
	"anchorpatch/internal/patch"
	"anchorpatch/internal/report"
	"anchorpatch/internal/source"
	"anchorpatch/internal/trace"
)

// Options configures PatchFile.
type Options struct {
	Specs        []patch.Spec
	BackupSuffix string // defaults to ".backup"
	DryRun       bool   // no backup, no write

	// DiffOut receives one diff per applied patch; nil disables diffs.
	DiffOut io.Writer
	Diff    diffview.Options

	Timer *observ.Timer
}

// Result is the outcome of one PatchFile call.
type Result struct {
	Report   report.Report
	Outcomes []patch.Outcome
	Final    *source.Buffer
}

// BackupPath returns the backup location for path.
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = ".backup"
	}
	return path + suffix
}

// PatchFile loads path, backs it up, runs the specs and writes the result
// back. A read or backup failure returns no Result. A write failure returns
// the Result alongside the error so the summary can still be printed.
func PatchFile(ctx context.Context, path string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	timer := opts.Timer

	lap := timer.Begin("load")
	info, err := os.Stat(path)
	if err != nil {
		timer.End(lap, "error")
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	buf, err := source.Load(path)
	if err != nil {
		timer.End(lap, "error")
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	timer.End(lap, fmt.Sprintf("%d bytes", buf.Len()))

	backup := ""
	if !opts.DryRun {
		backup = BackupPath(path, opts.BackupSuffix)
		lap = timer.Begin("backup")
		err := writeAtomic(backup, []byte(buf.Content), info.Mode().Perm())
		timer.End(lap, backup)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrBackup, backup, err)
		}
	}

	runOpts := patch.Options{Timer: timer}
	if opts.DiffOut != nil {
		runOpts.OnChange = func(c patch.Change) {
			err := diffview.Render(opts.DiffOut, diffview.Change{
				Title:       c.Name,
				Before:      c.Before,
				After:       c.After,
				Start:       c.Start,
				End:         c.End,
				Replacement: c.Replacement,
			}, opts.Diff)
			if err != nil {
				trace.Point(tracer, trace.ScopePatch, "diff", err.Error(), trace.ParentFrom(ctx))
			}
		}
	}
	final, outcomes := patch.Run(ctx, buf, opts.Specs, runOpts)

	res := &Result{
		Report:   report.FromOutcomes(path, outcomes),
		Outcomes: outcomes,
		Final:    final,
	}
	res.Report.DryRun = opts.DryRun
	res.Report.Backup = backup

	if opts.DryRun || final.Snapshot() == buf.Snapshot() {
		return res, nil
	}

	lap = timer.Begin("write")
	err = writeAtomic(path, []byte(final.Content), info.Mode().Perm())
	timer.End(lap, "")
	if err != nil {
		trace.Point(tracer, trace.ScopeRun, "write failed", err.Error(), trace.ParentFrom(ctx))
		return res, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	res.Report.Written = true
	return res, nil
}
