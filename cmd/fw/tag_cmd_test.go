package main

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/workspace"
)

// TestTag_AddReplaces tests that tag add fully replaces an existing tag.
//
// Scenario: User runs `fw tag add backend --priority 10 --after-clone make`,
// then `fw tag add backend --after-workon ls`
// Expected: The second definition wins, priority and after-clone are reset
func TestTag_AddReplaces(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := env.ctx()

	if err := runTagAdd(ctx, workspace.Tag{Name: "backend", Priority: 10, AfterClone: "make"}); err != nil {
		t.Fatalf("tag add failed: %v", err)
	}
	if err := runTagAdd(ctx, workspace.Tag{Name: "backend", AfterWorkon: "ls"}); err != nil {
		t.Fatalf("tag add failed: %v", err)
	}

	tag, err := env.load(t).Tag("backend")
	if err != nil {
		t.Fatalf("tag not saved: %v", err)
	}
	want := workspace.Tag{Name: "backend", AfterWorkon: "ls"}
	if tag != want {
		t.Errorf("tag = %+v, want %+v", tag, want)
	}
	if !strings.Contains(env.log.String(), "Replaced tag backend") {
		t.Errorf("expected replace message, got %q", env.log.String())
	}
}

// TestTag_AddRelativeWorkspace tests that a relative tag workspace is
// resolved against the working directory.
func TestTag_AddRelativeWorkspace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	if err := runTagAdd(env.ctx(), workspace.Tag{Name: "work", Workspace: "work"}); err != nil {
		t.Fatalf("tag add failed: %v", err)
	}

	tag, err := env.load(t).Tag("work")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(env.dir, "work"); tag.Workspace != want {
		t.Errorf("workspace = %q, want %q", tag.Workspace, want)
	}
}

// TestTag_RemoveKeepsMembership tests that removing a tag definition leaves
// the tag name on its projects.
func TestTag_RemoveKeepsMembership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t,
		[]workspace.Project{{Name: "api", GitURL: "git@example.com:api.git", Tags: []string{"backend"}}},
		[]workspace.Tag{{Name: "backend", AfterClone: "echo A"}},
	)

	cmd := newTagCmd()
	cmd.SetContext(env.ctx())
	cmd.SetArgs([]string{"rm", "backend"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("tag rm failed: %v", err)
	}

	ws := env.load(t)
	if _, err := ws.Tag("backend"); !errors.Is(err, workspace.ErrNotFound) {
		t.Errorf("tag should be gone, got %v", err)
	}
	p, _ := ws.Project("api")
	if !slices.Equal(p.Tags, []string{"backend"}) {
		t.Errorf("project tags = %v, want [backend]", p.Tags)
	}
}

// TestTag_ProjectAndUntag tests tag-project and untag-project idempotence.
func TestTag_ProjectAndUntag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t, []workspace.Project{{Name: "api", GitURL: "git@example.com:api.git"}}, nil)
	ctx := env.ctx()

	steps := []struct {
		add     bool
		want    []string
		message string
	}{
		{true, []string{"go"}, "Tagged api with go"},
		{true, []string{"go"}, "api already tagged go"},
		{false, nil, "Removed tag go from api"},
		{false, nil, "api is not tagged go"},
	}
	for _, step := range steps {
		if err := runTagProject(ctx, "api", "go", step.add); err != nil {
			t.Fatalf("runTagProject(add=%v) failed: %v", step.add, err)
		}
		p, _ := env.load(t).Project("api")
		if len(p.Tags) != len(step.want) || (len(step.want) > 0 && p.Tags[0] != step.want[0]) {
			t.Errorf("after add=%v tags = %v, want %v", step.add, p.Tags, step.want)
		}
		if !strings.Contains(env.log.String(), step.message) {
			t.Errorf("log missing %q:\n%s", step.message, env.log.String())
		}
	}

	if err := runTagProject(ctx, "nope", "go", true); !errors.Is(err, workspace.ErrNotFound) {
		t.Errorf("tagging unknown project: got %v, want ErrNotFound", err)
	}
}

func TestTag_ListAndInspect(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t,
		[]workspace.Project{
			{Name: "api", GitURL: "u1", Tags: []string{"backend", "legacy"}},
			{Name: "worker", GitURL: "u2", Tags: []string{"backend"}},
		},
		[]workspace.Tag{{Name: "backend", Priority: 10, AfterClone: "echo A"}},
	)
	ctx := env.ctx()

	t.Run("all tags", func(t *testing.T) {
		if err := runTagList(ctx, ""); err != nil {
			t.Fatal(err)
		}
		out := env.out.String()
		for _, want := range []string{"backend", "legacy", "10"} {
			if !strings.Contains(out, want) {
				t.Errorf("tag ls missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("inspect json", func(t *testing.T) {
		env.out.mu.Lock()
		env.out.buf.Reset()
		env.out.mu.Unlock()

		if err := runTagInspect(ctx, "backend", true); err != nil {
			t.Fatal(err)
		}
		var info tagInfo
		if err := json.Unmarshal([]byte(env.out.String()), &info); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, env.out.String())
		}
		if info.Priority != 10 || !slices.Equal(info.Projects, []string{"api", "worker"}) {
			t.Errorf("inspect = %+v", info)
		}
	})

	t.Run("undefined tag", func(t *testing.T) {
		if err := runTagInspect(ctx, "legacy", false); !errors.Is(err, workspace.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestTag_AddAliases(t *testing.T) {
	t.Parallel()

	tag := newTagCmd()
	for _, alias := range []string{"add", "update", "create"} {
		cmd, _, err := tag.Find([]string{alias})
		if err != nil {
			t.Errorf("Find(%q) error = %v", alias, err)
			continue
		}
		if cmd.Name() != "add" {
			t.Errorf("Find(%q) = %s, want add", alias, cmd.Name())
		}
	}
}
