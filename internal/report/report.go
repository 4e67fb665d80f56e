// Package report turns patch outcomes into the human summary and the optional
// machine-readable export.
package report

import (
	"anchorpatch/internal/observ"
	"anchorpatch/internal/patch"
)

// Entry is the exported form of one patch outcome.
type Entry struct {
	ID        string `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	State     string `json:"state" msgpack:"state"`
	Succeeded bool   `json:"succeeded" msgpack:"succeeded"`
	Detail    string `json:"detail,omitempty" msgpack:"detail,omitempty"`
	Start     int    `json:"start,omitempty" msgpack:"start,omitempty"`
	End       int    `json:"end,omitempty" msgpack:"end,omitempty"`
}

// Report describes one run over one bundle.
type Report struct {
	Path    string         `json:"path" msgpack:"path"`
	Backup  string         `json:"backup,omitempty" msgpack:"backup,omitempty"`
	DryRun  bool           `json:"dry_run" msgpack:"dry_run"`
	Written bool           `json:"written" msgpack:"written"`
	Applied int            `json:"applied" msgpack:"applied"`
	Total   int            `json:"total" msgpack:"total"`
	Patches []Entry        `json:"patches" msgpack:"patches"`
	Timings *observ.Report `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// FromOutcomes builds a Report for path.
func FromOutcomes(path string, outcomes []patch.Outcome) Report {
	r := Report{
		Path:    path,
		Total:   len(outcomes),
		Applied: patch.Applied(outcomes),
		Patches: make([]Entry, len(outcomes)),
	}
	for i, o := range outcomes {
		e := Entry{
			ID:        o.ID,
			Name:      o.Name,
			State:     o.State.String(),
			Succeeded: o.Succeeded,
			Detail:    o.Detail,
		}
		if o.State != patch.StateSkipped {
			e.Start, e.End = o.Location.Start(), o.Location.End()
		}
		r.Patches[i] = e
	}
	return r
}

// AllApplied reports whether every patch succeeded.
func (r Report) AllApplied() bool {
	return r.Applied == r.Total
}
