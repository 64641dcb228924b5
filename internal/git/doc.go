// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Clone and Sync
//
//   - [Clone]: Clone into an empty or missing directory
//   - [Sync]: Reconcile remotes, fetch, and fast-forward or merge the upstream
//
// Each call is independent and never retried. Failures are returned as
// [outcome.Failure] values whose reason is classified from git's output:
// not a repository, network error, diverged history, dirty working tree, or
// other. Output of the mutating commands is written to the caller's log
// writer so it can be attached to the project's outcome.
//
// # Remotes
//
// [ReconcileRemotes] adds missing remotes and fixes changed URLs but never
// deletes remotes it does not know about. [AddRemote], [RemoveRemote] and
// [SetRemoteURL] act on a single remote.
//
// # Repository Queries
//
//   - [GetOriginURL], [ExtractRepoNameFromURL]: Repository identity
//   - [GetCurrentBranch], [GetUpstream], [GetDefaultBranch]: Branch state
//   - [IsRepo], [FindAllRepos]: Discovery on disk
package git
