package forge

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/raphi011/fw/internal/log"
)

const pageSize = 100

// GitHub lists the repositories of a GitHub organization.
type GitHub struct {
	client          *gh.Client
	org             string
	includeArchived bool
}

// Compile-time check that GitHub implements Lister.
var _ Lister = (*GitHub)(nil)

// GitHubOption configures a GitHub lister.
type GitHubOption func(*GitHub) error

// WithGitHubBaseURL points the client at a different API endpoint,
// e.g. a GitHub Enterprise server.
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(g *GitHub) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return errors.Wrap(err, "parse github base url")
		}
		g.client.BaseURL = u
		return nil
	}
}

// IncludeArchived also lists archived repositories.
func IncludeArchived(include bool) GitHubOption {
	return func(g *GitHub) error {
		g.includeArchived = include
		return nil
	}
}

// NewGitHub creates a lister for org. An empty token uses unauthenticated
// requests, which only see public repositories and are rate limited.
func NewGitHub(token, org string, opts ...GitHubOption) (*GitHub, error) {
	if org == "" {
		return nil, errors.New("organization is required")
	}

	client := gh.NewClient(nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = gh.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	g := &GitHub{client: client, org: org}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *GitHub) Name() string { return "github" }

// List returns every repository of the organization, following pagination.
func (g *GitHub) List(ctx context.Context, onPage PageFunc) ([]Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}

	var repos []Repository
	for n := 1; ; n++ {
		page, resp, err := g.client.Repositories.ListByOrg(ctx, g.org, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "list repositories of %s", g.org)
		}
		log.FromContext(ctx).Debug("github page", "org", g.org, "page", n, "repos", len(page))

		for _, r := range page {
			if r.GetArchived() && !g.includeArchived {
				continue
			}
			repos = append(repos, Repository{
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				SSHURL:   r.GetSSHURL(),
				CloneURL: r.GetCloneURL(),
				Archived: r.GetArchived(),
			})
		}
		onPage.report(n, len(repos))

		if resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}
