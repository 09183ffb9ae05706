package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nickromney/certcheck/internal/cert"
)

// fakeParser answers by file base name so tests can script fingerprints and
// windows without real key material.
type fakeParser struct {
	fps     map[string]cert.Fingerprint
	errs    map[string]error
	windows map[string]cert.ValidityWindow
	delay   time.Duration

	mu    sync.Mutex
	calls []string
}

func (p *fakeParser) ModulusFingerprint(ctx context.Context, path string, f cert.Format) (cert.Fingerprint, error) {
	name := filepath.Base(path)
	p.record("modulus " + name)
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", &cert.ParseError{Path: path, Format: f, Err: ctx.Err()}
		}
	}
	if err, ok := p.errs[name]; ok {
		return "", err
	}
	fp, ok := p.fps[name]
	if !ok {
		return "", &cert.ParseError{Path: path, Format: f, Err: os.ErrInvalid}
	}
	return fp, nil
}

func (p *fakeParser) ValidityWindow(_ context.Context, path string) (cert.ValidityWindow, error) {
	name := filepath.Base(path)
	p.record("dates " + name)
	if w, ok := p.windows[name]; ok {
		return w, nil
	}
	return window(date(2020, 1, 1), date(2030, 1, 1)), nil
}

func (p *fakeParser) record(call string) {
	p.mu.Lock()
	p.calls = append(p.calls, call)
	p.mu.Unlock()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(notBefore, notAfter time.Time) cert.ValidityWindow {
	return cert.ValidityWindow{
		NotBefore: cert.Boundary{Raw: cert.FormatOpenSSLTime(notBefore), Time: notBefore},
		NotAfter:  cert.Boundary{Raw: cert.FormatOpenSSLTime(notAfter), Time: notAfter},
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

type captureSink struct {
	mu    sync.Mutex
	lines []Line
}

func (c *captureSink) WriteLine(l Line) {
	c.mu.Lock()
	c.lines = append(c.lines, l)
	c.mu.Unlock()
}

func (c *captureSink) matching(sev Severity, substr string) []Line {
	var out []Line
	for _, l := range c.lines {
		if l.Severity == sev && strings.Contains(l.Message, substr) {
			out = append(out, l)
		}
	}
	return out
}

func runWith(t *testing.T, opts Options, verbose bool) (*Report, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	if opts.Workers == 0 {
		opts.Workers = 1
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	r := Run(context.Background(), opts, NewLogger(sink, verbose))
	return r, sink
}

func onlyGroup(t *testing.T, r *Report) Outcome {
	t.Helper()
	if r.Fatal != nil {
		t.Fatalf("unexpected fatal: %v", r.Fatal)
	}
	if len(r.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(r.Groups))
	}
	return r.Groups[0]
}
