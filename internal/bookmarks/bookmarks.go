// Package bookmarks writes the Emacs projectile bookmarks file from the
// workspace's projects.
package bookmarks

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/storage"
)

// File is the projectile bookmarks file relative to the home directory.
const File = ".emacs.d/projectile-bookmarks.eld"

// DefaultPath returns ~/.emacs.d/projectile-bookmarks.eld.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get home directory")
	}
	return filepath.Join(home, File), nil
}

// Render formats project directories as an elisp list of strings. Paths
// are sorted, deduplicated and end in a slash like projectile stores them.
// Paths below home are abbreviated with ~ when home is set.
func Render(paths []string, home string) string {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if home != "" {
			if rel, err := filepath.Rel(home, p); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
				p = filepath.Join("~", rel)
			}
		}
		dirs = append(dirs, p+"/")
	}
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)

	quoted := make([]string, len(dirs))
	for i, d := range dirs {
		quoted[i] = quote(d)
	}
	return "(" + strings.Join(quoted, " ") + ")\n"
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Write replaces the bookmarks file at path with paths.
func Write(path string, paths []string, home string) error {
	if err := storage.WriteFile(path, []byte(Render(paths, home))); err != nil {
		return errors.Wrap(err, "write projectile bookmarks")
	}
	return nil
}
