package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	t.Setenv("CERTCHECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Workers = 2
	cfg.Timeout = 3 * time.Second
	cfg.Timezone = "UTC"

	path, err := Save(cfg, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestSave_DefaultsStayPortable(t *testing.T) {
	t.Setenv("CERTCHECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := Save(Default(), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "workers: 0\n") {
		t.Fatalf("default config should not pin a worker count:\n%s", data)
	}
}

func TestSave_RefusesOverwriteUnlessAsked(t *testing.T) {
	t.Setenv("CERTCHECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Save(Default(), false); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := Save(Default(), false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := Save(Default(), true); err != nil {
		t.Fatalf("overwrite Save: %v", err)
	}
}
