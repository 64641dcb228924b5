package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/forge"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/ui/progress"
	"github.com/raphi011/fw/internal/workspace"
)

func newImportCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:     "import <dir>",
		Short:   "Add an existing checkout as a project",
		GroupID: GroupImport,
		Args:    cobra.ExactArgs(1),
		Long: `Add the git repository in <dir> as a project, named after the directory
and using its origin URL. A checkout outside the workspace root keeps its
location through an override path.`,
		Example: `  fw import ~/code/api
  fw import -t tools .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], tags)
		},
	}

	registerTagFlag(cmd, &tags, "Tag the project (repeatable)")

	return cmd
}

func runImport(ctx context.Context, dir string, tags []string) error {
	dir, err := absDir(ctx, dir)
	if err != nil {
		return err
	}
	if !git.IsRepo(dir) {
		return errors.Newf("%s is not a git repository", dir)
	}

	var name string
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		p, err := projectFromCheckout(ctx, ws, dir)
		if err != nil {
			return err
		}
		p.Tags = tags
		name = p.Name
		return ws.AddProject(p)
	}); err != nil {
		return err
	}

	log.FromContext(ctx).Printf("Imported %s\n", name)
	return nil
}

// projectFromCheckout builds a project for the repository at dir. Checkouts
// outside their derived location get an override path.
func projectFromCheckout(ctx context.Context, ws *workspace.Workspace, dir string) (workspace.Project, error) {
	url, err := git.GetOriginURL(ctx, dir)
	if err != nil {
		return workspace.Project{}, errors.WithHint(err, "the repository needs an origin remote")
	}
	if url == "" {
		return workspace.Project{}, errors.WithHintf(errors.Newf("%s has no origin remote", dir),
			"add one with: git -C %s remote add origin <url>", dir)
	}

	p := workspace.Project{Name: filepath.Base(dir), GitURL: url}
	if ws.Path(p) != dir {
		p.OverridePath = dir
	}
	return p, nil
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setup <dir>",
		Short:   "Use <dir> as workspace root and import its repositories",
		GroupID: GroupImport,
		Args:    cobra.ExactArgs(1),
		Long: `Set <dir> as the workspace root in settings.toml and import every git
repository directly below it. Repositories without an origin and names
that already exist are skipped.`,
		Example: `  fw setup ~/workspace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runSetup(ctx context.Context, dir string) error {
	l := log.FromContext(ctx)
	settings := config.FromContext(ctx)

	dir, err := absDir(ctx, dir)
	if err != nil {
		return err
	}
	repos, err := git.FindAllRepos(dir)
	if err != nil {
		return err
	}

	if err := config.SetWorkspace(settings.Dir, dir); err != nil {
		return errors.Wrap(err, "save workspace root")
	}
	rooted := *settings
	rooted.Workspace = dir
	ctx = config.WithSettings(ctx, &rooted)

	var added int
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		for _, repo := range repos {
			p, err := projectFromCheckout(ctx, ws, repo)
			if err != nil {
				l.Printf("Skipping %s: %v\n", filepath.Base(repo), err)
				continue
			}
			if err := ws.AddProject(p); err != nil {
				if errors.Is(err, workspace.ErrConflict) {
					l.Printf("Skipping %s: already a project\n", p.Name)
					continue
				}
				return err
			}
			added++
		}
		return nil
	}); err != nil {
		return err
	}

	l.Printf("Workspace root set to %s, imported %d of %d repositories\n", dir, added, len(repos))
	return nil
}

func newOrgImportCmd() *cobra.Command {
	var (
		includeArchived bool
		apiURL          string
		tags            []string
	)

	cmd := &cobra.Command{
		Use:     "org-import <org>",
		Short:   "Import every repository of a GitHub organization",
		GroupID: GroupImport,
		Args:    cobra.ExactArgs(1),
		Long: `Add every repository of a GitHub organization as a project, using the SSH
clone URL. Existing project names are skipped.

The token is read from github_token in settings.toml or FW_GITHUB_TOKEN.
Without a token only public repositories are visible.`,
		Example: `  fw org-import my-org
  fw org-import -a -t work my-org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.FromContext(cmd.Context())
			opts := []forge.GitHubOption{forge.IncludeArchived(includeArchived)}
			if apiURL != "" {
				opts = append(opts, forge.WithGitHubBaseURL(apiURL))
			}
			lister, err := forge.NewGitHub(settings.GitHubToken, args[0], opts...)
			if err != nil {
				return err
			}
			return runForgeImport(cmd.Context(), lister, tags)
		},
	}

	cmd.Flags().BoolVarP(&includeArchived, "include-archived", "a", false, "Also import archived repositories")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "GitHub API URL, for GitHub Enterprise")
	registerTagFlag(cmd, &tags, "Tag imported projects (repeatable)")

	return cmd
}

func newGitLabImportCmd() *cobra.Command {
	var (
		include string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:     "gitlab-import",
		Short:   "Import every GitLab project you own",
		GroupID: GroupImport,
		Args:    cobra.NoArgs,
		Long: `Add every GitLab project owned by the token's user as a project.

The token and API URL are read from gitlab.token and gitlab.url in
settings.toml, or FW_GITLAB_TOKEN and FW_GITLAB_URL.`,
		Example: `  fw gitlab-import
  fw gitlab-import --include both`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := forge.ParseArchiveFilter(include)
			if err != nil {
				return err
			}
			settings := config.FromContext(cmd.Context())
			lister, err := forge.NewGitLab(settings.GitLab.Token, settings.GitLab.URL, filter)
			if err != nil {
				return err
			}
			return runForgeImport(cmd.Context(), lister, tags)
		},
	}

	cmd.Flags().StringVar(&include, "include", string(forge.ArchiveActive), "Projects to import: active, archived or both")
	_ = cmd.RegisterFlagCompletionFunc("include", cobra.FixedCompletions(
		[]string{string(forge.ArchiveActive), string(forge.ArchiveArchived), string(forge.ArchiveBoth)},
		cobra.ShellCompDirectiveNoFileComp))
	registerTagFlag(cmd, &tags, "Tag imported projects (repeatable)")

	return cmd
}

func runForgeImport(ctx context.Context, lister forge.Lister, tags []string) error {
	l := log.FromContext(ctx)

	var (
		activity *progress.ProgressBar
		onPage   forge.PageFunc
	)
	if !l.IsQuiet() && progress.Enabled(os.Stderr) {
		activity = progress.NewActivity("Listing "+lister.Name()+" repositories", os.Stderr)
		activity.Start()
		onPage = activity.Page
	}
	repos, err := lister.List(ctx, onPage)
	if activity != nil {
		activity.Stop()
	}
	if err != nil {
		return err
	}

	var res forge.Result
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		res, err = forge.Import(ws, repos, tags)
		return err
	}); err != nil {
		return err
	}

	if len(res.Skipped) > 0 {
		l.Printf("Skipped existing: %s\n", strings.Join(res.Skipped, ", "))
	}
	l.Printf("Imported %d of %d repositories from %s\n", len(res.Added), len(repos), lister.Name())
	return nil
}

// absDir resolves dir against the invocation's working directory.
func absDir(ctx context.Context, dir string) (string, error) {
	dir, err := config.ExpandPath(dir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(config.WorkDirFromContext(ctx), dir)
	}
	return filepath.Clean(dir), nil
}
