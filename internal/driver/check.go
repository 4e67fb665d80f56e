package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"anchorpatch/internal/patch"
	"anchorpatch/internal/report"
	"anchorpatch/internal/source"
	"anchorpatch/internal/trace"
)

// CheckOptions configures Check.
type CheckOptions struct {
	Specs []patch.Spec
	// Selection describes the patch configuration for cache keys.
	Selection []string
	Cache     *ReportCache
	Jobs      int // <= 0 uses GOMAXPROCS
}

// CheckResult is the dry-run outcome for one path. Err is set for read
// failures; Report is then empty.
type CheckResult struct {
	Path   string
	Report report.Report
	Cached bool
	Err    error
}

// Check dry-runs the specs over every path concurrently. Results keep the
// order of paths. Only cancellation of ctx is returned as an error.
func Check(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	results := make([]CheckResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = checkOne(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkOne(ctx context.Context, path string, opts CheckOptions) CheckResult {
	res := CheckResult{Path: path}
	buf, err := source.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("%w %s: %w", ErrRead, path, err)
		return res
	}

	key := CacheKey(buf.Snapshot(), opts.Selection)
	if cached, ok, err := opts.Cache.Get(key); err == nil && ok {
		cached.Path = path
		res.Report = cached
		res.Cached = true
		return res
	}

	_, outcomes := patch.Run(ctx, buf, opts.Specs, patch.Options{})
	res.Report = report.FromOutcomes(path, outcomes)
	res.Report.DryRun = true
	if err := opts.Cache.Put(key, res.Report); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeRun, "cache put", err.Error(), 0)
	}
	return res
}
