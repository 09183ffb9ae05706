package check

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nickromney/certcheck/internal/cert"
	"github.com/nickromney/certcheck/internal/trace"
)

// DefaultTimeout bounds the parser calls for a single artifact.
const DefaultTimeout = 10 * time.Second

// Options configures a run.
type Options struct {
	Directory string
	Parser    cert.Parser

	// At is the reference instant for every date comparison in the run.
	// Zero means "now", captured once before any group is processed.
	At time.Time
	// Location renders the local form of certificate dates. Nil means time.Local.
	Location *time.Location

	// Timeout per artifact; a timeout is reported as an error diagnostic.
	Timeout time.Duration
	// Workers is the number of groups processed concurrently. Output order
	// does not depend on it.
	Workers     int
	WarnUnknown bool
}

// Run scans opts.Directory and validates every group. Group diagnostics are
// flushed to log in group order as soon as each verdict is final.
func Run(ctx context.Context, opts Options, log *Logger) *Report {
	at := opts.At
	if at.IsZero() {
		at = time.Now()
	}
	r := &Report{
		RunID:     uuid.NewString(),
		Directory: opts.Directory,
		At:        at,
	}
	trace.Log.Infof("run %s: directory=%s at=%s", r.RunID, r.Directory, at.Format(time.RFC3339))

	groups, err := Scan(opts.Directory, ScanOptions{WarnUnknown: opts.WarnUnknown}, log)
	if err != nil {
		r.Fatal = err
		r.Error = err.Error()
		trace.Log.Errorf("run %s: %v", r.RunID, err)
		return r
	}

	v := &validator{
		parser:  opts.Parser,
		at:      at,
		loc:     opts.Location,
		timeout: opts.Timeout,
	}
	if v.parser == nil {
		v.parser = cert.NativeParser{}
	}
	if v.loc == nil {
		v.loc = time.Local
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	r.Groups = make([]Outcome, len(groups))
	logs := make([]*GroupLog, len(groups))
	done := make([]chan struct{}, len(groups))
	for i := range done {
		done[i] = make(chan struct{})
	}

	flushed := make(chan struct{})
	go func() {
		defer close(flushed)
		for i := range groups {
			<-done[i]
			log.Flush(logs[i])
		}
	}()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			start := time.Now()
			logs[i] = log.Group(g.ID)
			r.Groups[i] = v.check(egCtx, g, logs[i])
			trace.Log.Debugf("run %s: group %s %s in %s", r.RunID, g.ID, r.Groups[i].Verdict, time.Since(start))
			close(done[i])
			return nil
		})
	}
	_ = eg.Wait()
	<-flushed

	return r
}
