package forge

import (
	"context"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/workspace"
)

// Repository is a repository discovered on a forge.
type Repository struct {
	Name     string // short name, used as project name
	FullName string // owner/name or group path
	SSHURL   string
	CloneURL string // https
	Archived bool
}

// URL returns the URL used as the project's origin, preferring SSH.
func (r Repository) URL() string {
	if r.SSHURL != "" {
		return r.SSHURL
	}
	return r.CloneURL
}

// PageFunc is called after each page of a listing with the page number
// (from 1) and the number of repositories kept so far.
type PageFunc func(page, found int)

// Lister lists repositories on a forge.
type Lister interface {
	// Name returns the forge name ("github" or "gitlab")
	Name() string
	// List follows pagination until the last page. onPage may be nil.
	List(ctx context.Context, onPage PageFunc) ([]Repository, error)
}

func (f PageFunc) report(page, found int) {
	if f != nil {
		f(page, found)
	}
}

// Result reports what Import did.
type Result struct {
	Added   []string
	Skipped []string // names already taken by a project
}

// Import adds every repository as a project carrying tags.
func Import(ws *workspace.Workspace, repos []Repository, tags []string) (Result, error) {
	var res Result

	sorted := slices.Clone(repos)
	slices.SortFunc(sorted, func(a, b Repository) int { return strings.Compare(a.FullName, b.FullName) })

	for _, r := range sorted {
		err := ws.AddProject(workspace.Project{
			Name:   r.Name,
			GitURL: r.URL(),
			Tags:   tags,
		})
		switch {
		case err == nil:
			res.Added = append(res.Added, r.Name)
		case errors.Is(err, workspace.ErrConflict):
			res.Skipped = append(res.Skipped, r.Name)
		default:
			return res, errors.Wrapf(err, "import %s", r.FullName)
		}
	}
	return res, nil
}
