package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nickromney/certcheck/internal/cert"
)

// ErrNotDirectory is returned by Scan when the target is missing or is not a
// directory. It is the only condition that stops a run.
var ErrNotDirectory = errors.New("not a directory")

// Group is the set of artifacts sharing an identifier (filename stem).
type Group struct {
	ID string
	// Files maps a recognized extension to its path; one path per extension.
	Files map[string]string
	// Strays are files with the same identifier but an unrecognized extension.
	Strays []string
}

// Artifact is one file of a group, ready to be checked.
type Artifact struct {
	Path     string
	Ext      string
	Format   cert.Format
	Resolved bool
}

// Artifacts returns the group's files in check order: recognized extensions
// in registration order, then strays by name.
func (g Group) Artifacts() []Artifact {
	var out []Artifact
	for _, t := range artifactTypes {
		if path, ok := g.Files[t.Ext]; ok {
			out = append(out, Artifact{Path: path, Ext: t.Ext, Format: t.Format, Resolved: true})
		}
	}
	strays := append([]string(nil), g.Strays...)
	sort.Strings(strays)
	for _, path := range strays {
		ext := normalizeExt(filepath.Ext(path))
		f, ok := Resolve(ext)
		out = append(out, Artifact{Path: path, Ext: ext, Format: f, Resolved: ok})
	}
	return out
}

// ScanOptions controls Scan.
type ScanOptions struct {
	// WarnUnknown attaches unrecognized files to a group that shares their
	// identifier, so they are reported instead of silently skipped.
	WarnUnknown bool
}

// Scan groups the regular files directly inside dir by identifier. Groups are
// returned in order of first appearance in the sorted directory listing.
func Scan(dir string, opts ScanOptions, log *Logger) ([]Group, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Logf(SeverityError, "'%s' is not a directory!", dir)
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	log.Logf(SeverityDebug, "Scanning directory: %s for files: '*.%s'", dir, strings.Join(Extensions(), "', '*."))

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Logf(SeverityError, "Unable to read directory '%s': %v", dir, err)
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var groups []Group
	index := map[string]int{}
	strays := map[string][]string{}

	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)
		if !isRegularFile(path, e) {
			continue
		}

		ext := filepath.Ext(name)
		id := strings.TrimSuffix(name, ext)
		ext = normalizeExt(ext)
		if id == "" {
			// Dotfiles such as ".crt" have no identifier to group under.
			continue
		}

		if _, ok := Resolve(ext); !ok {
			strays[id] = append(strays[id], path)
			continue
		}

		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, Group{ID: id, Files: map[string]string{}})
		}
		if prev, dup := groups[i].Files[ext]; dup {
			log.Logf(SeverityWarn, "[%s] File '%s' replaces '%s' for extension '%s'", id, name, filepath.Base(prev), ext)
		}
		groups[i].Files[ext] = path

		log.Logf(SeverityDebug, "[%s] Loaded file: '%s'", id, name)
	}

	if opts.WarnUnknown {
		for i := range groups {
			groups[i].Strays = strays[groups[i].ID]
		}
	}
	return groups, nil
}

func isRegularFile(path string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
