package patch

import (
	"anchorpatch/internal/anchor"
)

// Spec describes one named patch. Specs are immutable and defined once.
type Spec struct {
	ID     string
	Name   string
	Locate anchor.Locator
	Render func(loc anchor.Location) string
}

// State is the lifecycle position of one patch within a run.
type State uint8

const (
	StatePending State = iota
	StateLocated
	StateSkipped // locate missed
	StateApplied
	StateFailed // located but not applied
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLocated:
		return "located"
	case StateSkipped:
		return "skipped"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSkipped || s == StateApplied || s == StateFailed
}

// DetailAlreadyApplied marks a located range that already holds its replacement.
const DetailAlreadyApplied = "already applied"

// Outcome is the immutable result of one patch in one run.
type Outcome struct {
	ID          string
	Name        string
	State       State
	Succeeded   bool
	Detail      string
	Location    anchor.Location // zero unless the patch was located
	Replacement string
}

func outcomeFor(spec Spec) Outcome {
	return Outcome{ID: spec.ID, Name: spec.Name, State: StatePending}
}

func (o Outcome) skipped(err error) Outcome {
	o.State = StateSkipped
	o.Detail = err.Error()
	return o
}

func (o Outcome) located(loc anchor.Location, replacement string) Outcome {
	o.State = StateLocated
	o.Location = loc
	o.Replacement = replacement
	return o
}

func (o Outcome) failed(detail string) Outcome {
	o.State = StateFailed
	o.Detail = detail
	return o
}

func (o Outcome) applied() Outcome {
	o.State = StateApplied
	o.Succeeded = true
	return o
}
