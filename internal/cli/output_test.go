package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nickromney/certcheck/internal/check"
)

func TestLineRenderer_PlainFormat(t *testing.T) {
	var out bytes.Buffer
	r := newLineRenderer(&out, false)

	r.WriteLine(check.Line{Severity: check.SeverityWarn, Message: "[site] careful"})
	r.WriteLine(check.Line{Severity: check.SeverityLog, Message: "note"})

	want := "WARN\t| [site] careful\nLOG\t| note\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestLineRenderer_SeverityColours(t *testing.T) {
	cases := []struct {
		sev  check.Severity
		want string
	}{
		{check.SeverityWarn, "\x1b[33m"},
		{check.SeverityError, "\x1b[31m"},
		{check.SeverityDebug, "\x1b[36m"},
		{check.SeveritySuccess, "\x1b[32m"},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		newLineRenderer(&out, true).WriteLine(check.Line{Severity: tc.sev, Message: "m"})
		got := out.String()
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%s: expected %q in %q", tc.sev, tc.want, got)
		}
		if !strings.Contains(got, strings.ToUpper(tc.sev.String())+"\t| m") {
			t.Fatalf("%s: tab separator lost: %q", tc.sev, got)
		}
	}

	var out bytes.Buffer
	newLineRenderer(&out, true).WriteLine(check.Line{Severity: check.SeverityLog, Message: "m"})
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("log lines use the default colour, got %q", out.String())
	}
}

func TestColorEnabled(t *testing.T) {
	old := isTerminalFn
	t.Cleanup(func() { isTerminalFn = old })
	isTerminalFn = func(*os.File) bool { return true }

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	if !colorEnabled("always", &bytes.Buffer{}) {
		t.Fatalf("always should colour any writer")
	}
	if colorEnabled("never", os.Stdout) {
		t.Fatalf("never should not colour a terminal")
	}
	if colorEnabled("auto", &bytes.Buffer{}) {
		t.Fatalf("auto should not colour a buffer")
	}
	if !colorEnabled("auto", os.Stdout) {
		t.Fatalf("auto should colour a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if colorEnabled("auto", os.Stdout) {
		t.Fatalf("auto should honour NO_COLOR")
	}
}

func TestExitCode(t *testing.T) {
	code, silent, ok := ExitCode(&ExitError{Code: ExitUsage, Msg: "bad"})
	if !ok || code != ExitUsage || silent {
		t.Fatalf("got code=%d silent=%v ok=%v", code, silent, ok)
	}
	if _, _, ok := ExitCode(os.ErrNotExist); ok {
		t.Fatalf("plain errors carry no exit code")
	}
}
