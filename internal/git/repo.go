package git

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// ExtractRepoNameFromURL extracts the repository name from a git URL,
// e.g. "git@github.com:acme/api.git" and "https://host/acme/api" give "api".
func ExtractRepoNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	url = strings.TrimSuffix(url, ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return url
}

// GetOriginURL gets the origin URL for a repository
func GetOriginURL(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", errors.Wrap(err, "get origin url")
	}
	return strings.TrimSpace(string(output)), nil
}

// GetDefaultBranch returns the default branch name for the remote (e.g., "main" or "master").
// Returns "" if the remote has no branches.
func GetDefaultBranch(ctx context.Context, repoPath, remote string) string {
	// Try to get default branch from remote HEAD
	output, err := outputGit(ctx, repoPath, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD")
	if err == nil {
		// Output is like "origin/main"
		ref := strings.TrimSpace(string(output))
		return strings.TrimPrefix(ref, remote+"/")
	}

	for _, branch := range []string{"main", "master"} {
		if runGit(ctx, repoPath, "rev-parse", "--verify", "-q", "refs/remotes/"+remote+"/"+branch) == nil {
			return branch
		}
	}
	return ""
}

// GetCurrentBranch returns the current branch name, or "" for a detached HEAD.
func GetCurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", errors.Wrap(err, "get branch")
	}
	return strings.TrimSpace(string(output)), nil
}

// GetUpstream returns the upstream of the current branch (e.g. "origin/main"),
// or "" if none is configured.
func GetUpstream(ctx context.Context, path string) string {
	output, err := outputGit(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// HasCommits reports whether HEAD points at a commit. A fresh or interrupted
// clone has an unborn HEAD.
func HasCommits(ctx context.Context, path string) bool {
	return runGit(ctx, path, "rev-parse", "--verify", "-q", "HEAD") == nil
}

// IsAncestor reports whether commit a is an ancestor of (or equal to) b.
func IsAncestor(ctx context.Context, path, a, b string) bool {
	return runGit(ctx, path, "merge-base", "--is-ancestor", a, b) == nil
}

// HasTrackedChanges reports whether tracked files have uncommitted changes.
// Untracked files are ignored.
func HasTrackedChanges(ctx context.Context, path string) (bool, error) {
	output, err := outputGit(ctx, path, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, errors.Wrap(err, "git status")
	}
	return strings.TrimSpace(string(output)) != "", nil
}
