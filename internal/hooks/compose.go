package hooks

import (
	"cmp"
	"slices"
	"strings"
)

// Kind identifies when a hook runs
type Kind string

const (
	KindClone  Kind = "clone"  // after a project was cloned
	KindWorkon Kind = "workon" // after entering a project
)

// Layer orders hook sources before priorities are considered.
// Lower layers run first.
type Layer int

const (
	LayerDefault Layer = iota // settings default_after_*
	LayerTag                  // tags carried by the project
	LayerProject              // the project's own hook
)

// Source is one contributor to a composed hook script.
type Source struct {
	Layer    Layer
	Name     string // tag name for LayerTag
	Priority int    // tag priority for LayerTag, higher runs first
	Script   string
}

// Compose orders sources and concatenates their scripts with newlines.
//
// Order: defaults, then tags by descending priority with ties broken by
// ascending name, then the project's own hook. Empty scripts are skipped.
// The input slice is not modified. No sources yield an empty script.
func Compose(sources []Source) string {
	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b Source) int {
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	var parts []string
	for _, s := range ordered {
		script := strings.TrimRight(s.Script, "\n")
		if strings.TrimSpace(script) == "" {
			continue
		}
		parts = append(parts, script)
	}
	return strings.Join(parts, "\n")
}
