package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/fw/internal/outcome"
)

func origin(url string) []Remote {
	return []Remote{{Name: "origin", URL: url}}
}

func TestClone_ThenSyncIsUpToDate(t *testing.T) {
	t.Parallel()

	_, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	if _, err := os.Stat(filepath.Join(path, "README.md")); err != nil {
		t.Fatalf("clone missing README: %v", err)
	}

	status, err := Sync(context.Background(), path, origin(originPath), SyncOptions{FastForwardOnly: true}, nil)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if status != outcome.StatusUpToDate {
		t.Errorf("Sync() = %v, want up to date", status)
	}
}

func TestClone_NonEmptyDestination(t *testing.T) {
	t.Parallel()

	_, originPath := setupTestRepoWithOrigin(t)
	dest := t.TempDir()
	os.WriteFile(filepath.Join(dest, "file"), []byte("x"), 0o644)

	err := Clone(context.Background(), originPath, dest, nil)
	if err == nil {
		t.Fatal("Clone() into non-empty dir should fail")
	}
	if outcome.ReasonOf(err) != outcome.ReasonOther {
		t.Errorf("reason = %v, want other", outcome.ReasonOf(err))
	}
}

func TestClone_Unreachable(t *testing.T) {
	t.Parallel()

	var log bytes.Buffer
	dest := filepath.Join(t.TempDir(), "x")
	err := Clone(context.Background(), filepath.Join(t.TempDir(), "missing.git"), dest, &log)
	if err == nil {
		t.Fatal("Clone() of missing remote should fail")
	}
	if log.Len() == 0 {
		t.Error("git output should be captured")
	}
	if empty, _ := IsEmptyDir(dest); !empty {
		t.Error("failed clone left files behind")
	}
}

func TestSync_FastForward(t *testing.T) {
	t.Parallel()

	upstream, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	commitFile(t, upstream, "new.txt", "new\n", "Add new")
	pushForTest(t, upstream)

	ctx := context.Background()
	status, err := Sync(ctx, path, origin(originPath), SyncOptions{FastForwardOnly: true}, nil)
	if err != nil || status != outcome.StatusUpdated {
		t.Fatalf("Sync() = %v, %v; want updated", status, err)
	}
	if _, err := os.Stat(filepath.Join(path, "new.txt")); err != nil {
		t.Error("fast-forward did not bring new.txt")
	}

	status, err = Sync(ctx, path, origin(originPath), SyncOptions{FastForwardOnly: true}, nil)
	if err != nil || status != outcome.StatusUpToDate {
		t.Errorf("second Sync() = %v, %v; want up to date", status, err)
	}
}

func TestSync_Diverged(t *testing.T) {
	t.Parallel()

	upstream, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	commitFile(t, upstream, "theirs.txt", "theirs\n", "Theirs")
	pushForTest(t, upstream)
	commitFile(t, path, "ours.txt", "ours\n", "Ours")

	ctx := context.Background()
	before := headOf(t, path)

	status, err := Sync(ctx, path, origin(originPath), SyncOptions{FastForwardOnly: true}, nil)
	if status != outcome.StatusFailed || outcome.ReasonOf(err) != outcome.ReasonDivergedHistory {
		t.Fatalf("ff-only Sync() = %v, %v; want diverged history", status, err)
	}
	if headOf(t, path) != before {
		t.Error("ff-only Sync() moved HEAD")
	}

	status, err = Sync(ctx, path, origin(originPath), SyncOptions{}, nil)
	if err != nil || status != outcome.StatusUpdated {
		t.Fatalf("merge Sync() = %v, %v; want updated", status, err)
	}
	if !IsAncestor(ctx, path, "origin/main", "HEAD") {
		t.Error("upstream not merged")
	}
}

func TestSync_MergeConflictIsAborted(t *testing.T) {
	t.Parallel()

	upstream, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	commitFile(t, upstream, "README.md", "theirs\n", "Theirs")
	pushForTest(t, upstream)
	commitFile(t, path, "README.md", "ours\n", "Ours")

	ctx := context.Background()
	before := headOf(t, path)

	status, err := Sync(ctx, path, origin(originPath), SyncOptions{}, nil)
	if status != outcome.StatusFailed {
		t.Fatalf("Sync() = %v, want failed", status)
	}
	if outcome.ReasonOf(err) != outcome.ReasonOther || !strings.Contains(err.Error(), "merge conflict") {
		t.Errorf("error = %v, want merge conflict", err)
	}
	if mergeInProgress(ctx, path) {
		t.Error("merge was not aborted")
	}
	if headOf(t, path) != before {
		t.Error("HEAD moved after aborted merge")
	}
	if dirty, _ := HasTrackedChanges(ctx, path); dirty {
		t.Error("working tree left dirty after abort")
	}
}

func TestSync_DirtyWorkingTree(t *testing.T) {
	t.Parallel()

	upstream, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	commitFile(t, upstream, "README.md", "theirs\n", "Theirs")
	pushForTest(t, upstream)
	os.WriteFile(filepath.Join(path, "README.md"), []byte("local edit\n"), 0o644)

	status, err := Sync(context.Background(), path, origin(originPath), SyncOptions{}, nil)
	if status != outcome.StatusFailed || outcome.ReasonOf(err) != outcome.ReasonDirtyWorkingTree {
		t.Errorf("Sync() = %v, %v; want dirty working tree", status, err)
	}
}

func TestSync_UnrelatedLocalEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		diverge bool
		opts    SyncOptions
	}{
		{"fast-forward", false, SyncOptions{FastForwardOnly: true}},
		{"merge", true, SyncOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			upstream, originPath := setupTestRepoWithOrigin(t)
			path := cloneForTest(t, originPath)

			commitFile(t, upstream, "new.txt", "new\n", "Add new")
			pushForTest(t, upstream)
			if tt.diverge {
				commitFile(t, path, "ours.txt", "ours\n", "Ours")
			}
			if err := os.WriteFile(filepath.Join(path, "README.md"), []byte("local edit\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			ctx := context.Background()
			status, err := Sync(ctx, path, origin(originPath), tt.opts, nil)
			if err != nil || status != outcome.StatusUpdated {
				t.Fatalf("Sync() = %v, %v; want updated", status, err)
			}
			if _, err := os.Stat(filepath.Join(path, "new.txt")); err != nil {
				t.Error("upstream change not integrated")
			}
			data, err := os.ReadFile(filepath.Join(path, "README.md"))
			if err != nil || string(data) != "local edit\n" {
				t.Errorf("local edit lost: %q, %v", data, err)
			}
		})
	}
}

func TestSync_NotARepo(t *testing.T) {
	t.Parallel()

	status, err := Sync(context.Background(), t.TempDir(), nil, SyncOptions{}, nil)
	if status != outcome.StatusFailed || outcome.ReasonOf(err) != outcome.ReasonNotARepo {
		t.Errorf("Sync() = %v, %v; want not a repository", status, err)
	}
}

func TestSync_NetworkFailure(t *testing.T) {
	t.Parallel()

	_, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)

	missing := filepath.Join(t.TempDir(), "gone.git")
	status, err := Sync(context.Background(), path, origin(missing), SyncOptions{}, nil)
	if status != outcome.StatusFailed || outcome.ReasonOf(err) != outcome.ReasonNetwork {
		t.Errorf("Sync() = %v, %v; want network error", status, err)
	}
}

func TestSync_ReconcilesRemotes(t *testing.T) {
	t.Parallel()

	_, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)
	ctx := context.Background()

	if err := AddRemote(ctx, path, "unmanaged", originPath); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	remotes := []Remote{
		{Name: "origin", URL: originPath},
		{Name: "upstream", URL: originPath},
	}
	if _, err := Sync(ctx, path, remotes, SyncOptions{}, &log); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	got, err := ListRemotes(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range got {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "origin,unmanaged,upstream" {
		t.Errorf("remotes = %v, want origin,unmanaged,upstream", names)
	}
	if !strings.Contains(log.String(), "added remote upstream") {
		t.Errorf("log = %q, want note about added remote", log.String())
	}
}

func TestSync_ResumesEmptyClone(t *testing.T) {
	t.Parallel()

	tmp := resolveTempDir(t)
	originPath := filepath.Join(tmp, "origin.git")
	ctx := context.Background()
	if err := runGit(ctx, "", "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatal(err)
	}

	path := cloneForTest(t, originPath)
	status, err := Sync(ctx, path, origin(originPath), SyncOptions{}, nil)
	if err != nil || status != outcome.StatusUpToDate {
		t.Fatalf("Sync() of empty remote = %v, %v; want up to date", status, err)
	}

	// someone pushes the first commit
	writer := filepath.Join(tmp, "writer")
	if err := runGit(ctx, "", "clone", originPath, writer); err != nil {
		t.Fatal(err)
	}
	configureTestRepo(t, writer)
	commitFile(t, writer, "README.md", "# hello\n", "Initial commit")
	if err := runGit(ctx, writer, "push", "-u", "origin", "HEAD"); err != nil {
		t.Fatal(err)
	}

	status, err = Sync(ctx, path, origin(originPath), SyncOptions{}, nil)
	if err != nil || status != outcome.StatusUpdated {
		t.Fatalf("Sync() after first push = %v, %v; want updated", status, err)
	}
	if _, err := os.Stat(filepath.Join(path, "README.md")); err != nil {
		t.Error("README.md not checked out")
	}

	status, err = Sync(ctx, path, origin(originPath), SyncOptions{}, nil)
	if err != nil || status != outcome.StatusUpToDate {
		t.Errorf("third Sync() = %v, %v; want up to date", status, err)
	}
}

func TestSync_DetachedHead(t *testing.T) {
	t.Parallel()

	_, originPath := setupTestRepoWithOrigin(t)
	path := cloneForTest(t, originPath)
	if err := runGit(context.Background(), path, "checkout", "--detach"); err != nil {
		t.Fatal(err)
	}

	status, err := Sync(context.Background(), path, origin(originPath), SyncOptions{}, nil)
	if err != nil || status != outcome.StatusSkipped {
		t.Errorf("Sync() = %v, %v; want skipped", status, err)
	}
}
