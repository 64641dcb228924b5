package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupWorkspace = "workspace"
	GroupProject   = "project"
	GroupImport    = "import"
	GroupShell     = "shell"
	GroupConfig    = "config"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fw",
		Short: "Workspace orchestrator for many git projects",
		Long: `fw manages a declared set of git projects grouped by tags.

It keeps local clones in sync with their remotes, runs commands across the
workspace in parallel and composes per-project and per-tag hooks.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			if verbose && quiet {
				return errors.New("--verbose and --quiet are mutually exclusive")
			}

			ctx := cmd.Context()
			ctx = log.WithLogger(ctx, log.New(output.Styled(os.Stderr, os.Environ()), verbose, quiet))

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			ctx = config.WithSettings(ctx, settings)
			cmd.SetContext(ctx)

			return git.CheckGit()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace Commands:"},
		&cobra.Group{ID: GroupProject, Title: "Project Commands:"},
		&cobra.Group{ID: GroupImport, Title: "Import Commands:"},
		&cobra.Group{ID: GroupShell, Title: "Shell Integration Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Workspace commands
	root.AddCommand(newSyncCmd())
	root.AddCommand(newForeachCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newTagCmd())

	// Project commands
	root.AddCommand(newAddCmd())
	root.AddCommand(newUpdateCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newAddRemoteCmd())
	root.AddCommand(newRemoveRemoteCmd())
	root.AddCommand(newInspectCmd())

	// Import commands
	root.AddCommand(newImportCmd())
	root.AddCommand(newSetupCmd())
	root.AddCommand(newOrgImportCmd())
	root.AddCommand(newGitLabImportCmd())

	// Shell integration
	root.AddCommand(newPrintPathCmd())
	root.AddCommand(newGenWorkonCmd())
	root.AddCommand(newGenReworkonCmd())
	root.AddCommand(newReworkonCmd())
	root.AddCommand(newProjectileCmd())

	// Config commands
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fw: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithWorkDir(ctx, workDir)
	// Primary data goes to stdout, styled output is downsampled for pipes.
	ctx = output.WithPrinter(ctx, output.Styled(os.Stdout, os.Environ()))

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// loadSettings reads settings.toml from the config directory.
func loadSettings() (*config.Settings, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(dir)
	if err != nil {
		return nil, errors.WithHintf(err, "check %s", config.SettingsFile)
	}
	return settings, nil
}
