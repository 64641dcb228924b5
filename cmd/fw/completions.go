package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/workspace"
)

// completionWorkspace loads the workspace for shell completion. Completion
// runs without PersistentPreRunE, so settings are read here.
func completionWorkspace() *workspace.Workspace {
	settings, err := loadSettings()
	if err != nil {
		return nil
	}
	ws, err := workspace.NewStore(settings).Load()
	if err != nil {
		return nil
	}
	return ws
}

func filterPrefix(candidates []string, prefix string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completeProjectArg completes a project name as the first argument.
func completeProjectArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ws := completionWorkspace()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(ws.ProjectNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeTagArg completes a tag name as the first argument.
func completeTagArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeTags(cmd, args, toComplete)
}

// completeTags completes any known tag, for -t/--tag flags.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := completionWorkspace()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(ws.KnownTags(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeProjectThenTag completes "<project> <tag>" argument pairs.
func completeProjectThenTag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := completionWorkspace()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	switch len(args) {
	case 0:
		return filterPrefix(ws.ProjectNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return filterPrefix(ws.KnownTags(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeRemoteArgs completes "<project> <remote>" for remove-remote.
func completeRemoteArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := completionWorkspace()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	switch len(args) {
	case 0:
		return filterPrefix(ws.ProjectNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		p, err := ws.Project(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for _, r := range p.Remotes {
			names = append(names, r.Name)
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// registerTagFlag adds a repeatable -t/--tag flag with completion.
func registerTagFlag(cmd *cobra.Command, tags *[]string, usage string) {
	cmd.Flags().StringSliceVarP(tags, "tag", "t", nil, usage)
	_ = cmd.RegisterFlagCompletionFunc("tag", completeTags)
}

