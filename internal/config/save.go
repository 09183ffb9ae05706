package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by Save when the config file exists and overwrite
// was not requested.
var ErrExists = errors.New("config file already exists")

// Save writes cfg to Path() atomically and returns the path written.
func Save(cfg Config, overwrite bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	var mode os.FileMode = 0o644
	if st, serr := os.Stat(path); serr == nil {
		if !overwrite {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		mode = st.Mode().Perm()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "config.yml.*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename temp config: %w", err)
	}

	return path, nil
}
