package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/workspace"
)

// lockedBuffer is a bytes.Buffer safe for the concurrent writes of fan-out
// workers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv is an isolated config directory and workspace root.
type testEnv struct {
	dir      string
	settings *config.Settings
	out      *lockedBuffer // stdout
	log      *lockedBuffer // stderr
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}

	settings := config.Default(filepath.Join(dir, "config"))
	settings.Workspace = filepath.Join(dir, "ws")
	settings.Shell = []string{"sh", "-c"}

	return &testEnv{
		dir:      dir,
		settings: settings,
		out:      &lockedBuffer{},
		log:      &lockedBuffer{},
	}
}

// ctxIn returns a context as Execute and PersistentPreRunE would build it,
// with the working directory set to workDir.
func (e *testEnv) ctxIn(workDir string) context.Context {
	ctx := context.Background()
	ctx = config.WithSettings(ctx, e.settings)
	ctx = config.WithWorkDir(ctx, workDir)
	// Not terminals, so styling is stripped and assertions see plain text.
	ctx = log.WithLogger(ctx, log.New(output.Styled(e.log, nil), false, false))
	ctx = output.WithPrinter(ctx, output.Styled(e.out, nil))
	return ctx
}

func (e *testEnv) ctx() context.Context {
	return e.ctxIn(e.dir)
}

// seed writes projects and tags to the config directory.
func (e *testEnv) seed(t *testing.T, projects []workspace.Project, tags []workspace.Tag) {
	t.Helper()

	store := workspace.NewStore(e.settings)
	ws, err := store.Load()
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	for _, p := range projects {
		if err := ws.AddProject(p); err != nil {
			t.Fatalf("add project %s: %v", p.Name, err)
		}
	}
	for _, tag := range tags {
		if _, err := ws.AddTag(tag); err != nil {
			t.Fatalf("add tag %s: %v", tag.Name, err)
		}
	}
	if err := store.Save(ws); err != nil {
		t.Fatalf("save workspace: %v", err)
	}
}

// load reads the persisted workspace back.
func (e *testEnv) load(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.NewStore(e.settings).Load()
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	return ws
}

// checkout creates the project directory, optionally with files.
func (e *testEnv) checkout(t *testing.T, name string, files ...string) string {
	t.Helper()
	path := filepath.Join(e.settings.Workspace, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(path, f), []byte(f+"\n"), 0644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	return path
}
