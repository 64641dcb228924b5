package forge

import (
	"context"

	"github.com/cockroachdb/errors"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/raphi011/fw/internal/log"
)

// ArchiveFilter selects projects by archive state.
type ArchiveFilter string

const (
	ArchiveActive   ArchiveFilter = "active"
	ArchiveArchived ArchiveFilter = "archived"
	ArchiveBoth     ArchiveFilter = "both"
)

// ParseArchiveFilter validates an --include value.
func ParseArchiveFilter(s string) (ArchiveFilter, error) {
	switch f := ArchiveFilter(s); f {
	case ArchiveActive, ArchiveArchived, ArchiveBoth:
		return f, nil
	}
	return "", errors.WithHint(
		errors.Newf("invalid archive filter %q", s),
		"use one of: active, archived, both")
}

// GitLab lists the projects owned by the authenticated GitLab user.
type GitLab struct {
	client *gitlab.Client
	filter ArchiveFilter
}

// Compile-time check that GitLab implements Lister.
var _ Lister = (*GitLab)(nil)

// NewGitLab creates a lister. baseURL may be empty for gitlab.com.
func NewGitLab(token, baseURL string, filter ArchiveFilter) (*GitLab, error) {
	if token == "" {
		return nil, errors.WithHint(
			errors.New("gitlab token is required"),
			"set gitlab.token in settings.toml or FW_GITLAB_TOKEN")
	}

	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create gitlab client")
	}
	if filter == "" {
		filter = ArchiveActive
	}
	return &GitLab{client: client, filter: filter}, nil
}

func (g *GitLab) Name() string { return "gitlab" }

// List returns the owned projects matching the archive filter, following pagination.
func (g *GitLab) List(ctx context.Context, onPage PageFunc) ([]Repository, error) {
	opts := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
		Owned:       gitlab.Ptr(true),
	}
	switch g.filter {
	case ArchiveActive:
		opts.Archived = gitlab.Ptr(false)
	case ArchiveArchived:
		opts.Archived = gitlab.Ptr(true)
	}

	var repos []Repository
	for n := 1; ; n++ {
		page, resp, err := g.client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "list gitlab projects")
		}
		log.FromContext(ctx).Debug("gitlab page", "page", n, "projects", len(page))

		for _, p := range page {
			repos = append(repos, Repository{
				Name:     p.Path,
				FullName: p.PathWithNamespace,
				SSHURL:   p.SSHURLToRepo,
				CloneURL: p.HTTPURLToRepo,
				Archived: p.Archived,
			})
		}
		onPage.report(n, len(repos))

		if resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}
