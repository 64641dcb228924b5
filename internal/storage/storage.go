// Package storage provides atomic file operations for the TOML files in the
// fw config directory.
package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Ext is the file extension of stored entities.
const Ext = ".toml"

// SaveTOML atomically writes data as TOML to the specified path.
func SaveTOML(path string, data any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return errors.Wrapf(err, "encode %s", filepath.Base(path))
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile atomically writes data to path. It ensures the parent directory
// exists, writes to a temp file, then renames to the final path.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// LoadTOML reads TOML from the specified path into dest.
// Returns an error matching os.ErrNotExist if the file doesn't exist.
func LoadTOML(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), dest); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

// List returns the entity names (file names without extension) stored in dir,
// sorted. A missing dir yields no names.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	slices.Sort(names)
	return names, nil
}

// Remove deletes the file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}
