package check

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScan_GroupsByIdentifier(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.crt", "b.key", "a.csr", "a.crt", "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.crt"), 0o755); err != nil {
		t.Fatal(err)
	}

	groups, err := Scan(dir, ScanOptions{}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 2 || groups[0].ID != "a" || groups[1].ID != "b" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	if len(groups[0].Files) != 2 || groups[0].Files["csr"] != filepath.Join(dir, "a.csr") {
		t.Fatalf("group a files: %+v", groups[0].Files)
	}
}

func TestScan_UnknownExtensionOnly(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "site.unknownext")

	groups, err := Scan(dir, ScanOptions{WarnUnknown: true}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}

func TestScan_StraysAttachOnlyWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "site.crt", "site.pem")

	groups, _ := Scan(dir, ScanOptions{}, nil)
	if len(groups[0].Strays) != 0 {
		t.Fatalf("expected strays to be ignored, got %v", groups[0].Strays)
	}

	groups, _ = Scan(dir, ScanOptions{WarnUnknown: true}, nil)
	if len(groups[0].Strays) != 1 || filepath.Base(groups[0].Strays[0]) != "site.pem" {
		t.Fatalf("expected site.pem stray, got %v", groups[0].Strays)
	}
}

func TestScan_DuplicateExtensionLaterWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "site.CRT", "site.crt")
	sink := &captureSink{}

	groups, err := Scan(dir, ScanOptions{}, NewLogger(sink, false))
	if err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Skip("case-insensitive filesystem")
	}
	if got := filepath.Base(groups[0].Files["crt"]); got != "site.crt" {
		t.Fatalf("expected later entry site.crt to win, got %s", got)
	}
	if len(sink.matching(SeverityWarn, "replaces")) != 1 {
		t.Fatalf("expected one replacement warning, got %+v", sink.lines)
	}
}

func TestScan_SkipsDotfilesWithoutIdentifier(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, ".crt")

	groups, err := Scan(dir, ScanOptions{}, nil)
	if err != nil || len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v err=%v", groups, err)
	}
}

func TestScan_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.crt")
	touch(t, filepath.Dir(target), "real.crt")
	if err := os.Symlink(target, filepath.Join(dir, "site.crt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	groups, err := Scan(dir, ScanOptions{}, nil)
	if err != nil || len(groups) != 1 {
		t.Fatalf("expected symlinked cert to be scanned, got %+v err=%v", groups, err)
	}
}

func TestScan_NotADirectory(t *testing.T) {
	sink := &captureSink{}
	missing := filepath.Join(t.TempDir(), "missing")

	groups, err := Scan(missing, ScanOptions{}, NewLogger(sink, true))
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups")
	}
	if len(sink.lines) != 1 || sink.lines[0].Severity != SeverityError || !strings.Contains(sink.lines[0].Message, "is not a directory") {
		t.Fatalf("expected single error line, got %+v", sink.lines)
	}

	file := filepath.Join(t.TempDir(), "file.crt")
	touch(t, filepath.Dir(file), "file.crt")
	if _, err := Scan(file, ScanOptions{}, nil); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory for a file, got %v", err)
	}
}

func TestGroup_ArtifactsOrder(t *testing.T) {
	g := Group{
		ID: "site",
		Files: map[string]string{
			"key":    "/d/site.key",
			"crt":    "/d/site.crt",
			"bundle": "/d/site.bundle",
			"csr":    "/d/site.csr",
		},
		Strays: []string{"/d/site.txt", "/d/site.pem"},
	}
	var got []string
	for _, a := range g.Artifacts() {
		got = append(got, filepath.Base(a.Path))
	}
	want := "site.bundle site.csr site.crt site.key site.pem site.txt"
	if strings.Join(got, " ") != want {
		t.Fatalf("got %v, want %s", got, want)
	}
}
