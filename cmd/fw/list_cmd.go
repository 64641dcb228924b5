package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/hooks"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/ui/static"
	"github.com/raphi011/fw/internal/ui/styles"
	"github.com/raphi011/fw/internal/workspace"
)

func newListCmd() *cobra.Command {
	var (
		tags []string
		long bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List projects",
		GroupID: GroupWorkspace,
		Args:    cobra.NoArgs,
		Example: `  fw ls            # Project names
  fw ls -t backend # Projects tagged backend
  fw ls -l         # Table with path, tags and origin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), tags, long)
		},
	}

	registerTagFlag(cmd, &tags, "Only list projects with this tag (repeatable)")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show path, tags and origin")

	return cmd
}

func runList(ctx context.Context, tags []string, long bool) error {
	out := output.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	projects, err := selectProjects(ctx, ws, tags)
	if err != nil {
		return err
	}

	if !long {
		for _, p := range projects {
			out.Println(p.Name)
		}
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		path := ws.Path(p)
		if !git.IsRepo(path) {
			path = styles.MutedStyle.Render(path + " (not cloned)")
		}
		rows = append(rows, []string{p.Name, path, strings.Join(p.Tags, ","), p.GitURL})
	}
	out.Print(static.RenderTable([]string{"NAME", "PATH", "TAGS", "GIT"}, rows))
	return nil
}

type remoteInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// projectInfo is the JSON form of inspect.
type projectInfo struct {
	Name                 string             `json:"name"`
	Git                  string             `json:"git"`
	Path                 string             `json:"path"`
	OverridePath         string             `json:"override_path,omitempty"`
	Cloned               bool               `json:"cloned"`
	Tags                 []string           `json:"tags"`
	Remotes              []remoteInfo       `json:"remotes"`
	AfterClone           string             `json:"after_clone,omitempty"`
	AfterWorkon          string             `json:"after_workon,omitempty"`
	EffectiveAfterClone  string             `json:"effective_after_clone,omitempty"`
	EffectiveAfterWorkon string             `json:"effective_after_workon,omitempty"`
}

func newProjectInfo(ws *workspace.Workspace, p workspace.Project) projectInfo {
	path := ws.Path(p)
	var remotes []remoteInfo
	for _, r := range p.AllRemotes() {
		remotes = append(remotes, remoteInfo{Name: r.Name, URL: r.URL})
	}
	return projectInfo{
		Name:                 p.Name,
		Git:                  p.GitURL,
		Path:                 path,
		OverridePath:         p.OverridePath,
		Cloned:               git.IsRepo(path),
		Tags:                 append([]string{}, p.Tags...),
		Remotes:              remotes,
		AfterClone:           p.AfterClone,
		AfterWorkon:          p.AfterWorkon,
		EffectiveAfterClone:  ws.EffectiveHook(p, hooks.KindClone),
		EffectiveAfterWorkon: ws.EffectiveHook(p, hooks.KindWorkon),
	}
}

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "inspect <name>",
		Short:             "Show a project's settings and effective hooks",
		GroupID:           GroupProject,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjectArg,
		Example: `  fw inspect api
  fw inspect api -j | jq .path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runInspect(ctx context.Context, name string, asJSON bool) error {
	out := output.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.Project(name)
	if err != nil {
		return err
	}
	info := newProjectInfo(ws, p)

	if asJSON {
		return out.JSON(info)
	}

	remotes := make([]string, len(info.Remotes))
	for i, r := range info.Remotes {
		remotes[i] = r.Name + " " + r.URL
	}
	rows := [][]string{
		{"Name", styles.AccentStyle.Render(info.Name)},
		{"Git", info.Git},
		{"Path", info.Path},
		{"Cloned", strconv.FormatBool(info.Cloned)},
		{"Tags", strings.Join(info.Tags, ", ")},
		{"Remotes", strings.Join(remotes, "\n")},
		{"After clone", info.EffectiveAfterClone},
		{"After workon", info.EffectiveAfterWorkon},
	}
	out.Print(static.RenderTable([]string{"FIELD", "VALUE"}, rows))
	return nil
}

func newPrintPathCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:               "print-path <name>",
		Short:             "Print a project's checkout path",
		GroupID:           GroupShell,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjectArg,
		Example: `  cd "$(fw print-path api)"
  fw print-path -c api       # Also copy it to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrintPath(cmd.Context(), args[0], copyPath)
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the path to the clipboard")

	return cmd
}

func runPrintPath(ctx context.Context, name string, copyPath bool) error {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.Project(name)
	if err != nil {
		return err
	}
	path := ws.Path(p)
	output.FromContext(ctx).Println(path)

	if copyPath {
		if err := clipboard.WriteAll(path); err != nil {
			return errors.WithHint(errors.Wrap(err, "copy to clipboard"),
				"on Linux install xclip, xsel or wl-clipboard")
		}
		log.FromContext(ctx).Printf("Copied %q to clipboard\n", path)
	}
	return nil
}
