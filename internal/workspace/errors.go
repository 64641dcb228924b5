package workspace

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sahilm/fuzzy"
)

// Sentinel errors. Test with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrInvalidName = errors.New("invalid name")
)

// notFound returns an ErrNotFound error for a missing entity, with a
// "did you mean" hint when a candidate name is close.
func notFound(kind, name string, candidates []string) error {
	err := errors.Mark(errors.Newf("%s %q not found", kind, name), ErrNotFound)
	if s := suggest(name, candidates); s != "" {
		err = errors.WithHintf(err, "did you mean %q?", s)
	}
	return err
}

func conflict(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConflict)
}

// suggest returns the candidate closest to name, or "" if none is close.
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return matches[0].Str
	}
	// name may be a candidate with extra characters, e.g. "apii" for "api"
	best := ""
	for _, c := range candidates {
		if len(fuzzy.Find(c, []string{name})) > 0 && len(c) > len(best) {
			best = c
		}
	}
	return best
}

// ValidateName checks a project or tag name. Names are used as file names,
// so they must be non-empty and must not contain a path separator.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Mark(errors.New("name must not be empty"), ErrInvalidName)
	case name == "." || name == "..":
		return errors.Mark(errors.Newf("invalid name %q", name), ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return errors.Mark(errors.Newf("name %q must not contain a path separator", name), ErrInvalidName)
	}
	return nil
}
