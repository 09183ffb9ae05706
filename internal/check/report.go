package check

import (
	"time"

	"github.com/nickromney/certcheck/internal/cert"
)

// Verdict is the terminal state of a group.
type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictFailed  Verdict = "failed"
)

// Outcome is the finalized result for one group.
type Outcome struct {
	ID        string           `json:"id"`
	Files     []string         `json:"files"`
	Reference cert.Fingerprint `json:"reference_modulus,omitempty"`
	Counts    Counts           `json:"counts"`
	Verdict   Verdict          `json:"verdict"`
	Lines     []Line           `json:"lines"`
}

// finish derives the verdict: any error or warning fails the group.
func (o *Outcome) finish(log *GroupLog) {
	o.Counts = log.Counts()
	if o.Counts.Error > 0 || o.Counts.Warn > 0 {
		o.Verdict = VerdictFailed
		log.notef(SeverityError, "Validation failed! %d error(s), %d warning(s)", o.Counts.Error, o.Counts.Warn)
	} else {
		o.Verdict = VerdictSuccess
		log.notef(SeveritySuccess, "Validation successful!")
	}
	o.Lines = log.Lines()
}

// Report is the result of one run. Groups are independent; there is no
// merged verdict.
type Report struct {
	RunID     string    `json:"run_id"`
	Directory string    `json:"directory"`
	At        time.Time `json:"reference_instant"`
	Groups    []Outcome `json:"groups"`
	// Fatal is set when the run stopped before processing any group.
	Fatal error `json:"-"`
	// Error is Fatal's message, for JSON consumers.
	Error string `json:"error,omitempty"`
}

// Failed reports whether any group failed.
func (r *Report) Failed() bool {
	for _, g := range r.Groups {
		if g.Verdict == VerdictFailed {
			return true
		}
	}
	return false
}
