package git

import (
	"context"
	"io"

	"github.com/raphi011/fw/internal/outcome"
)

// SyncOptions controls how Sync integrates upstream changes.
type SyncOptions struct {
	// FastForwardOnly refuses to create merge commits; diverged branches fail
	// with ReasonDivergedHistory.
	FastForwardOnly bool
}

// Sync brings the checkout at path up to date: it reconciles remotes,
// fetches every remote, and integrates the upstream of the current branch.
//
// Returned statuses are StatusUpdated, StatusUpToDate, or StatusSkipped
// (detached HEAD or no upstream). Errors are *outcome.Failure values.
// A checkout left with an unborn HEAD by an interrupted clone is resumed by
// checking out the remote default branch.
func Sync(ctx context.Context, path string, remotes []Remote, opts SyncOptions, out io.Writer) (outcome.Status, error) {
	if !IsRepo(path) {
		return outcome.StatusFailed, outcome.NewFailure(outcome.ReasonNotARepo, path)
	}

	if err := ReconcileRemotes(ctx, path, remotes, out); err != nil {
		return outcome.StatusFailed, classify(err.Error(), err)
	}
	for _, r := range remotes {
		if err := transcriptGit(ctx, out, path, "fetch", "--prune", r.Name); err != nil {
			return outcome.StatusFailed, err
		}
	}

	if !HasCommits(ctx, path) {
		return resume(ctx, path, out)
	}

	branch, err := GetCurrentBranch(ctx, path)
	if err != nil {
		return outcome.StatusFailed, classify(err.Error(), err)
	}
	if branch == "" {
		writeNote(out, "detached HEAD, nothing to integrate")
		return outcome.StatusSkipped, nil
	}
	upstream := GetUpstream(ctx, path)
	if upstream == "" {
		writeNote(out, "branch %s has no upstream", branch)
		return outcome.StatusSkipped, nil
	}

	if IsAncestor(ctx, path, upstream, "HEAD") {
		return outcome.StatusUpToDate, nil
	}

	// Local edits only fail the update when git refuses to integrate over
	// them; classify maps that refusal to ReasonDirtyWorkingTree.
	if IsAncestor(ctx, path, "HEAD", upstream) {
		if err := transcriptGit(ctx, out, path, "merge", "--ff-only", upstream); err != nil {
			return outcome.StatusFailed, err
		}
		return outcome.StatusUpdated, nil
	}

	if opts.FastForwardOnly {
		return outcome.StatusFailed, outcome.NewFailure(outcome.ReasonDivergedHistory,
			branch+" and "+upstream+" have diverged")
	}
	return merge(ctx, path, upstream, out)
}

// merge creates a merge commit with upstream. A conflicting merge is aborted
// so the checkout is left as it was. A merge git refuses to start because of
// local changes leaves nothing to abort.
func merge(ctx context.Context, path, upstream string, out io.Writer) (outcome.Status, error) {
	err := transcriptGit(ctx, out, path, "merge", "--no-edit", upstream)
	if err == nil {
		return outcome.StatusUpdated, nil
	}
	if !mergeInProgress(ctx, path) {
		return outcome.StatusFailed, err
	}
	if abortErr := transcriptGit(ctx, out, path, "merge", "--abort"); abortErr != nil {
		return outcome.StatusFailed, outcome.Other("merge conflict, abort failed: %v", abortErr)
	}
	return outcome.StatusFailed, outcome.Other("merge conflict")
}

func mergeInProgress(ctx context.Context, path string) bool {
	return runGit(ctx, path, "rev-parse", "-q", "--verify", "MERGE_HEAD") == nil
}

// resume checks out the remote default branch in a checkout without commits.
func resume(ctx context.Context, path string, out io.Writer) (outcome.Status, error) {
	// refresh origin/HEAD; an empty remote has none
	_ = runGit(ctx, path, "remote", "set-head", "origin", "--auto")

	branch := GetDefaultBranch(ctx, path, "origin")
	if branch == "" {
		writeNote(out, "remote has no branches yet")
		return outcome.StatusUpToDate, nil
	}
	if err := transcriptGit(ctx, out, path, "checkout", "-B", branch, "--track", "origin/"+branch); err != nil {
		return outcome.StatusFailed, err
	}
	return outcome.StatusUpdated, nil
}
