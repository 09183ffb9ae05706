package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nickromney/certcheck/internal/cert"
)

const localTimeLayout = "2006-01-02 15:04:05"

// validator checks one group at a time. It holds no per-group state, so a
// single validator can be shared by concurrent workers.
type validator struct {
	parser  cert.Parser
	at      time.Time
	loc     *time.Location
	timeout time.Duration
}

func (v *validator) check(ctx context.Context, g Group, log *GroupLog) Outcome {
	arts := g.Artifacts()
	out := Outcome{ID: g.ID}
	for _, a := range arts {
		out.Files = append(out.Files, a.Path)
	}

	log.Logf(SeverityDebug, "Processing %d file(s)", len(arts))

	for _, a := range arts {
		if !a.Resolved {
			log.Logf(SeverityWarn, "No type to match extension: '%s' (file: '%s')", a.Ext, a.Path)
			continue
		}
		v.checkArtifact(ctx, a, &out, log)
	}

	out.finish(log)
	return out
}

func (v *validator) checkArtifact(ctx context.Context, a Artifact, out *Outcome, log *GroupLog) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	fp, err := v.parser.ModulusFingerprint(ctx, a.Path, a.Format)
	switch {
	case err != nil:
		log.Logf(SeverityError, "Unable to read modulus from file: '%s': %s", a.Path, v.describe(err))
		// A non-RSA certificate still has dates worth checking; anything
		// else means the file itself is unreadable.
		if !errors.Is(err, cert.ErrNotRSA) {
			return
		}
	case out.Reference == "":
		out.Reference = fp
		log.Logf(SeverityDebug, "Stored modulus: '%s' (from file: '%s')", fp, a.Path)
	case fp == out.Reference:
		log.Logf(SeverityDebug, "Modulus for file: '%s' matches expected: '%s'", a.Path, out.Reference)
	default:
		log.Logf(SeverityError, "Modulus for file: '%s' '%s' DOES NOT MATCH expected: '%s'", a.Path, fp, out.Reference)
	}

	if a.Format.HasValidityWindow() {
		v.checkDates(ctx, a, log)
	}
}

func (v *validator) checkDates(ctx context.Context, a Artifact, log *GroupLog) {
	log.Logf(SeverityDebug, "Checking date validity for cert file: '%s'", a.Path)

	w, err := v.parser.ValidityWindow(ctx, a.Path)
	if err != nil {
		log.Logf(SeverityError, "Unable to read validity dates from file: '%s': %s", a.Path, v.describe(err))
		return
	}

	v.checkBoundary(a, "notBefore", w.NotBefore, w.NotBefore.Time.After(v.at), "Certificate is not yet valid", log)
	v.checkBoundary(a, "notAfter", w.NotAfter, w.NotAfter.Time.Before(v.at), "Certificate has expired", log)
}

// checkBoundary reports one end of the window. outOfRange is the strict
// comparison against the reference instant, so equality is valid.
func (v *validator) checkBoundary(a Artifact, key string, b cert.Boundary, outOfRange bool, problem string, log *GroupLog) {
	if !b.OK() {
		log.Logf(SeverityWarn, "Unable to parse date key: '%s' from file: '%s': %v", key, a.Path, b.Err)
		return
	}

	local := b.Time.In(v.loc).Format(localTimeLayout)
	if outOfRange {
		log.Logf(SeverityError, "%s! -> '%s' = '%s' (Local: '%s')", problem, key, b.Raw, local)
		return
	}
	log.Logf(SeverityDebug, "Valid for date range: '%s' = '%s' (Local: '%s')", key, b.Raw, local)
}

func (v *validator) describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s", v.timeout)
	}
	var pe *cert.ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
