package apply

import (
	"github.com/jmylchreest/imbue/internal/colour"
)

// TargetOutcome is one target's result within a run. A target can have
// written files and still carry an error when activation failed.
type TargetOutcome struct {
	Target  string
	Written []string
	Notes   []string
	Err     error
}

// Failed reports whether the target ended in error.
func (o TargetOutcome) Failed() bool { return o.Err != nil }

// Skipped reports a target that did nothing at all: no writes, no error,
// at least one note explaining why.
func (o TargetOutcome) Skipped() bool {
	return o.Err == nil && len(o.Written) == 0 && len(o.Notes) > 0
}

// Report summarises one apply run.
type Report struct {
	RunID     string
	Wallpaper string
	Mode      colour.ThemeMode
	Seed      colour.ARGB
	CacheHit  bool
	Outcomes  []TargetOutcome
}

// Failures returns the outcomes that ended in error.
func (r *Report) Failures() []TargetOutcome {
	var failed []TargetOutcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// UninstallReport summarises an uninstall run.
type UninstallReport struct {
	// NothingToDo is set when no manifest exists: the no-op case.
	NothingToDo bool
	// Conservative is set when the manifest was corrupt and only
	// imbue-owned paths were touched.
	Conservative bool
	Removed      []string
	Restored     []string
	ResetKeys    []string
	Notes        []string
}
