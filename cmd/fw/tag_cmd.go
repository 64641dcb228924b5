package main

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	execcmd "github.com/raphi011/fw/internal/cmd"
	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/orchestrator"
	"github.com/raphi011/fw/internal/outcome"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/ui/static"
	"github.com/raphi011/fw/internal/ui/styles"
	"github.com/raphi011/fw/internal/workspace"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Short:   "Manage tags",
		GroupID: GroupProject,
		Long: `Tags group projects. A tag can carry after-clone and after-workon hooks,
a priority that orders those hooks, and a workspace directory that projects
carrying the tag are checked out under.`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(
		newTagAddCmd(),
		newTagRemoveCmd(),
		newTagListCmd(),
		newTagInspectCmd(),
		newTagProjectCmd(),
		newUntagProjectCmd(),
		newAutotagCmd(),
	)

	return cmd
}

func newTagAddCmd() *cobra.Command {
	var t workspace.Tag

	cmd := &cobra.Command{
		Use:     "add <name>",
		Aliases: []string{"update", "create"},
		Short:   "Create or replace a tag",
		Long: `Create a tag. An existing tag with the same name is replaced entirely;
fields not given are reset.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTagArg,
		Example: `  fw tag add backend --priority 10 --after-clone 'make deps'
  fw tag add work --workspace ~/work`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Name = args[0]
			return runTagAdd(cmd.Context(), t)
		},
	}

	cmd.Flags().StringVar(&t.AfterWorkon, "after-workon", "", "Shell code run after entering a project")
	cmd.Flags().StringVar(&t.AfterClone, "after-clone", "", "Shell code run after cloning a project")
	cmd.Flags().IntVar(&t.Priority, "priority", 0, "Hook order; higher runs first")
	cmd.Flags().StringVar(&t.Workspace, "workspace", "", "Directory projects with this tag are checked out under")
	_ = cmd.MarkFlagDirname("workspace")

	return cmd
}

func runTagAdd(ctx context.Context, t workspace.Tag) error {
	if t.Workspace != "" {
		dir, err := absDir(ctx, t.Workspace)
		if err != nil {
			return err
		}
		t.Workspace = dir
	}

	var replaced bool
	err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		var err error
		replaced, err = ws.AddTag(t)
		return err
	})
	if err != nil {
		return err
	}

	if replaced {
		log.FromContext(ctx).Printf("Replaced tag %s\n", t.Name)
	} else {
		log.FromContext(ctx).Printf("Added tag %s\n", t.Name)
	}
	return nil
}

func newTagRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a tag definition",
		Long: `Remove a tag definition. Projects keep carrying the tag name; it simply
contributes no hooks or workspace until defined again.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTagArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
				return ws.RemoveTag(args[0])
			})
			if err != nil {
				return err
			}
			log.FromContext(ctx).Printf("Removed tag %s\n", args[0])
			return nil
		},
	}
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls [project]",
		Aliases: []string{"list"},
		Short:   "List tags",
		Long: `Without arguments, list every defined tag and every tag carried by a
project. With a project, list the tags that project carries.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjectArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			project := ""
			if len(args) == 1 {
				project = args[0]
			}
			return runTagList(cmd.Context(), project)
		},
	}
}

func runTagList(ctx context.Context, project string) error {
	out := output.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}

	if project != "" {
		p, err := ws.Project(project)
		if err != nil {
			return err
		}
		for _, t := range p.Tags {
			out.Println(t)
		}
		return nil
	}

	var rows [][]string
	for _, name := range ws.KnownTags() {
		count := strconv.Itoa(len(ws.ProjectsWithTag(name)))
		t, err := ws.Tag(name)
		if err != nil {
			// carried by projects but never defined
			rows = append(rows, []string{styles.MutedStyle.Render(name), "", "", count})
			continue
		}
		rows = append(rows, []string{name, strconv.Itoa(t.Priority), t.Workspace, count})
	}
	out.Print(static.RenderTable([]string{"TAG", "PRIORITY", "WORKSPACE", "PROJECTS"}, rows))
	return nil
}

func newTagInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "inspect <name>",
		Short:             "Show a tag's settings and projects",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTagArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagInspect(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

type tagInfo struct {
	Name        string   `json:"name"`
	Priority    int      `json:"priority"`
	Workspace   string   `json:"workspace,omitempty"`
	AfterClone  string   `json:"after_clone,omitempty"`
	AfterWorkon string   `json:"after_workon,omitempty"`
	Projects    []string `json:"projects"`
}

func runTagInspect(ctx context.Context, name string, asJSON bool) error {
	out := output.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	t, err := ws.Tag(name)
	if err != nil {
		return err
	}
	info := tagInfo{
		Name:        t.Name,
		Priority:    t.Priority,
		Workspace:   t.Workspace,
		AfterClone:  t.AfterClone,
		AfterWorkon: t.AfterWorkon,
		Projects:    append([]string{}, ws.ProjectsWithTag(t.Name)...),
	}

	if asJSON {
		return out.JSON(info)
	}

	rows := [][]string{
		{"Name", styles.AccentStyle.Render(info.Name)},
		{"Priority", strconv.Itoa(info.Priority)},
		{"Workspace", info.Workspace},
		{"After clone", info.AfterClone},
		{"After workon", info.AfterWorkon},
		{"Projects", strings.Join(info.Projects, ", ")},
	}
	out.Print(static.RenderTable([]string{"FIELD", "VALUE"}, rows))
	return nil
}

func newTagProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "tag-project <project> <tag>",
		Short:             "Add a tag to a project",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectThenTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagProject(cmd.Context(), args[0], args[1], true)
		},
	}
}

func newUntagProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "untag-project <project> <tag>",
		Short:             "Remove a tag from a project",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectThenTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagProject(cmd.Context(), args[0], args[1], false)
		},
	}
}

func runTagProject(ctx context.Context, project, tag string, add bool) error {
	var changed bool
	err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		var err error
		if add {
			changed, err = ws.TagProject(project, tag)
		} else {
			changed, err = ws.UntagProject(project, tag)
		}
		return err
	})
	if err != nil {
		return err
	}

	l := log.FromContext(ctx)
	switch {
	case !changed && add:
		l.Printf("%s already tagged %s\n", project, tag)
	case !changed:
		l.Printf("%s is not tagged %s\n", project, tag)
	case add:
		l.Printf("Tagged %s with %s\n", project, tag)
	default:
		l.Printf("Removed tag %s from %s\n", tag, project)
	}
	return nil
}

type autotagOptions struct {
	tags        []string
	parallelism int
	cpuPool     bool
}

func newAutotagCmd() *cobra.Command {
	var opts autotagOptions

	cmd := &cobra.Command{
		Use:   "autotag <tag> <command>",
		Short: "Tag every project where a command succeeds",
		Long: `Run a command in every selected project and add the tag to each project
where it exits 0. A nonzero exit leaves the project alone; autotag never
removes a tag.`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeTagArg,
		Example: `  fw tag autotag go 'test -f go.mod'
  fw tag autotag rust -t backend 'test -f Cargo.toml'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.cpuPool = !cmd.Flags().Changed("parallelism")
			_, err := runAutotag(cmd.Context(), args[0], execcmd.JoinArgs(args[1:]), opts)
			return err
		},
	}

	cmd.Flags().SetInterspersed(false)
	registerTagFlag(cmd, &opts.tags, "Only run in projects with this tag (repeatable)")
	cmd.Flags().IntVarP(&opts.parallelism, "parallelism", "p", runtime.NumCPU(), "Number of commands run at once (1-128)")

	return cmd
}

// runAutotag returns the projects that were newly tagged.
func runAutotag(ctx context.Context, tag, command string, opts autotagOptions) ([]string, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New("no command given")
	}
	if err := workspace.ValidateName(tag); err != nil {
		return nil, errors.Wrap(err, "tag")
	}

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := selectProjects(ctx, ws, opts.tags)
	if err != nil {
		return nil, err
	}
	targets := orchestrator.Resolve(ws, projects)

	a := &orchestrator.Autotag{
		Shell:   config.FromContext(ctx).Shell,
		Tag:     tag,
		Command: command,
	}
	r := runReport{label: "autotag " + tag, bar: true, cpuPool: opts.cpuPool, exitsOK: true}
	_, runErr := fanOut(ctx, opts.parallelism, len(targets), r, func(pool *executor.Pool) []outcome.Outcome {
		return a.Run(ctx, pool, targets)
	})
	if runErr != nil && !errors.Is(runErr, errRunFailed) {
		return nil, runErr
	}

	// Matches are applied even when some projects failed. The model is
	// reloaded so changes made during the run are kept.
	var tagged []string
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		var err error
		tagged, err = a.Apply(ctx, ws)
		return err
	}); err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	for _, name := range tagged {
		l.Printf("Tagged %s with %s\n", name, tag)
	}
	l.Printf("%d of %d projects matched, %d newly tagged\n", len(a.Matched()), len(targets), len(tagged))
	return tagged, runErr
}
