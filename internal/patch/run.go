package patch

import (
	"context"
	"strconv"

	"anchorpatch/internal/observ"
	"anchorpatch/internal/source"
	"anchorpatch/internal/trace"
)

// Change describes one applied splice.
type Change struct {
	ID          string
	Name        string
	Before      *source.Buffer
	After       *source.Buffer
	Start, End  int // replaced range in Before
	Replacement string
}

// Options tune a Run. The zero value is valid.
type Options struct {
	// OnChange is called after every applied patch.
	OnChange func(Change)
	// Timer, when set, receives one lap per patch.
	Timer *observ.Timer
}

// Step locates spec against buf and applies it. It returns the buffer the
// next step must use: buf itself unless the patch was applied.
func Step(ctx context.Context, buf *source.Buffer, spec Spec) (*source.Buffer, Outcome) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePatch, "patch:"+spec.ID, trace.ParentFrom(ctx))

	next, out := step(tracer, span.ID(), buf, spec)

	span.WithExtra("state", out.State.String())
	if out.State != StateSkipped {
		span.WithExtra("start", strconv.Itoa(out.Location.Start())).
			WithExtra("end", strconv.Itoa(out.Location.End())).
			WithExtra("len", strconv.FormatUint(uint64(out.Location.Span.Len()), 10))
	}
	span.End(out.Detail)
	return next, out
}

func step(tracer trace.Tracer, parent uint64, buf *source.Buffer, spec Spec) (*source.Buffer, Outcome) {
	out := outcomeFor(spec)

	locate := trace.Begin(tracer, trace.ScopeStep, "locate", parent)
	loc, err := spec.Locate(buf)
	if err != nil {
		locate.End(err.Error())
		return buf, out.skipped(err)
	}
	locate.End(loc.String())

	replacement := spec.Render(loc)
	out = out.located(loc, replacement)
	if loc.Text == replacement {
		return buf, out.failed(DetailAlreadyApplied)
	}

	apply := trace.Begin(tracer, trace.ScopeStep, "apply", parent)
	next, err := Apply(buf, loc, replacement)
	if err != nil {
		apply.End(err.Error())
		return buf, out.failed(err.Error())
	}
	apply.End("")
	return next, out.applied()
}

// Run folds specs over buf in order and returns the final buffer together
// with one outcome per spec. A miss never stops the run.
func Run(ctx context.Context, buf *source.Buffer, specs []Spec, opts Options) (*source.Buffer, []Outcome) {
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeRun, "run:"+buf.Path, trace.ParentFrom(ctx))
	ctx = trace.WithParent(ctx, run)

	outcomes := make([]Outcome, 0, len(specs))
	applied := 0
	current := buf
	for _, spec := range specs {
		lap := opts.Timer.Begin(spec.ID)
		next, out := Step(ctx, current, spec)
		opts.Timer.End(lap, out.State.String())

		if out.Succeeded {
			applied++
			if opts.OnChange != nil {
				opts.OnChange(Change{
					ID:          spec.ID,
					Name:        spec.Name,
					Before:      current,
					After:       next,
					Start:       out.Location.Start(),
					End:         out.Location.End(),
					Replacement: out.Replacement,
				})
			}
		}
		outcomes = append(outcomes, out)
		current = next
	}

	run.End(strconv.Itoa(applied) + "/" + strconv.Itoa(len(specs)))
	return current, outcomes
}

// Applied counts the successful outcomes.
func Applied(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}
