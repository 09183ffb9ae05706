package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
# comment
certs_dir: /tmp/certs
verbose: true
workers: 3
timeout: 2s
parser: openssl
timezone: America/Denver
`)

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got.CertsDir != "/tmp/certs" || !got.Verbose || got.Workers != 3 {
		t.Fatalf("unexpected config %+v", got)
	}
	if got.Timeout != 2*time.Second {
		t.Fatalf("timeout: got %s", got.Timeout)
	}
	if got.Parser != "openssl" {
		t.Fatalf("parser: got %q", got.Parser)
	}
	// Unset keys keep their defaults.
	if got.Color != "auto" || !got.WarnUnknownExtensions {
		t.Fatalf("expected defaults for unset keys, got %+v", got)
	}
	loc, err := got.Location()
	if err != nil || loc.String() != "America/Denver" {
		t.Fatalf("location: %v %v", loc, err)
	}
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"color":    "color: sometimes\n",
		"parser":   "parser: gnutls\n",
		"workers":  "workers: -1\n",
		"timezone": "timezone: Mars/Olympus\n",
		"yaml":     "verbose: [\n",
	}
	for name, contents := range cases {
		got, err := LoadFile(writeConfig(t, contents))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if got != Default() {
			t.Fatalf("%s: expected defaults on error, got %+v", name, got)
		}
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	got, err := LoadFile(writeConfig(t, "certs_dir: ~/certs\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got.CertsDir, "~") {
		t.Fatalf("expected ~ to be expanded, got %q", got.CertsDir)
	}
}

func TestPath_Precedence(t *testing.T) {
	t.Setenv("CERTCHECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := Path()
	if err != nil || p != filepath.Join("/xdg", "certcheck", "config.yml") {
		t.Fatalf("XDG path: %q %v", p, err)
	}

	t.Setenv("CERTCHECK_CONFIG", "/etc/certcheck.yml")
	p, err = Path()
	if err != nil || p != "/etc/certcheck.yml" {
		t.Fatalf("override path: %q %v", p, err)
	}
}
