package git

import (
	"context"
	"io"

	"github.com/raphi011/fw/internal/cmd"
)

// gitEnv keeps git from blocking on credential prompts; many git commands
// run in parallel without a terminal attached.
var gitEnv = []string{"GIT_TERMINAL_PROMPT=0"}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// transcriptGit runs a git command whose combined output belongs to the
// operation's log, writing it to out. Failures are classified from the output.
func transcriptGit(ctx context.Context, out io.Writer, dir string, args ...string) error {
	res := cmd.Capture(ctx, "", gitEnv, "git", gitArgs(dir, args)...)
	if out != nil && res.Output != "" {
		_, _ = io.WriteString(out, res.Output)
	}
	if res.OK() {
		return nil
	}
	if res.Err != nil {
		return classify(res.Output, res.Err)
	}
	return classify(res.Output, nil)
}
