//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User", "GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User", "GIT_COMMITTER_EMAIL=test@test.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupOrigin creates a bare repo at dir/name.git with one commit on main,
// pushed from a scratch clone. Returns (originPath, scratchPath); commits
// made in the scratch clone can be pushed with pushCommit.
func setupOrigin(t *testing.T, dir, name string) (string, string) {
	t.Helper()

	origin := filepath.Join(dir, "origins", name+".git")
	scratch := filepath.Join(dir, "scratch", name)

	// -b main ensures consistent default branch across git versions
	runGitCommand(t, dir, "init", "--bare", "-b", "main", origin)
	runGitCommand(t, dir, "clone", origin, scratch)
	runGitCommand(t, scratch, "config", "commit.gpgsign", "false")
	pushCommit(t, scratch, "README.md")

	return origin, scratch
}

// pushCommit commits a new file in a scratch clone and pushes it.
func pushCommit(t *testing.T, scratch, file string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(scratch, file), []byte("content for "+file+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
	runGitCommand(t, scratch, "add", file)
	runGitCommand(t, scratch, "commit", "-m", "Add "+file)
	runGitCommand(t, scratch, "push", "origin", "HEAD:main")
}
