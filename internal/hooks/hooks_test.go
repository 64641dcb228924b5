package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Parallel()

	ctx := Context{
		Name:    "api",
		Path:    "/home/user/workspace/api",
		URL:     "git@example.com:acme/api.git",
		Trigger: KindClone,
		Env:     map[string]string{"env": "dev"},
	}

	tests := []struct {
		name     string
		command  string
		expected string
	}{
		{
			name:     "single placeholder",
			command:  "code {path}",
			expected: "code '/home/user/workspace/api'",
		},
		{
			name:     "all placeholders",
			command:  "{name} {path} {url} {trigger}",
			expected: "'api' '/home/user/workspace/api' 'git@example.com:acme/api.git' 'clone'",
		},
		{
			name:     "no placeholders",
			command:  "echo hello",
			expected: "echo hello",
		},
		{
			name:     "repeated placeholder",
			command:  "{name} and {name}",
			expected: "'api' and 'api'",
		},
		{
			name:     "raw value",
			command:  "echo {name:raw}",
			expected: "echo api",
		},
		{
			name:     "custom env",
			command:  "make {env}",
			expected: "make 'dev'",
		},
		{
			name:     "default used",
			command:  "make {mode:-release}",
			expected: "make 'release'",
		},
		{
			name:     "unknown key untouched",
			command:  "echo {unknown}",
			expected: "echo {unknown}",
		},
		{
			name:     "shell expansion untouched",
			command:  "cd ${HOME} && echo ${name}",
			expected: "cd ${HOME} && echo ${name}",
		},
		{
			name:     "shell default expansion untouched",
			command:  "echo ${FOO:-bar}",
			expected: "echo ${FOO:-bar}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, ctx)
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_Quoting(t *testing.T) {
	t.Parallel()

	ctx := Context{Name: "it's"}
	got := SubstitutePlaceholders("echo {name}", ctx)
	want := `echo 'it'\''s'`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnviron(t *testing.T) {
	t.Parallel()

	env := Context{Name: "api", Path: "/p", URL: "u", Trigger: KindWorkon}.Environ()
	want := []string{
		"FW_PROJECT_NAME=api",
		"FW_PROJECT_PATH=/p",
		"FW_PROJECT_URL=u",
		"FW_HOOK=workon",
	}
	if strings.Join(env, ",") != strings.Join(want, ",") {
		t.Errorf("Environ() = %v, want %v", env, want)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hc := Context{Name: "api", Path: dir, URL: "file:///x", Trigger: KindClone}

	res := Run(context.Background(), nil, "echo $FW_PROJECT_NAME > out.txt\necho {trigger} >> out.txt", hc)
	if !res.OK() {
		t.Fatalf("Run() = %+v, want success", res)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "api\nclone\n" {
		t.Errorf("hook output = %q", got)
	}
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	res := Run(context.Background(), nil, "  \n", Context{Path: "/does/not/exist"})
	if !res.OK() {
		t.Errorf("empty script should be a no-op, got %+v", res)
	}
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()

	res := Run(context.Background(), []string{"sh", "-c"}, "echo broken >&2; exit 3", Context{Path: t.TempDir()})
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Output, "broken") {
		t.Errorf("Output = %q, want captured stderr", res.Output)
	}
}

func TestWorkonScript(t *testing.T) {
	t.Parallel()

	hc := Context{Name: "api", Path: "/src/api", URL: "u"}

	tests := []struct {
		name   string
		script string
		quick  bool
		want   []string
		absent []string
	}{
		{
			name:   "with hook",
			script: "nvm use",
			want:   []string{"cd '/src/api'\n", "export FW_PROJECT_NAME='api'\n", "export FW_HOOK='workon'\n", "nvm use\n"},
		},
		{
			name:   "quick skips hook",
			script: "nvm use",
			quick:  true,
			want:   []string{"cd '/src/api'\n"},
			absent: []string{"nvm use", "export"},
		},
		{
			name:   "empty hook",
			script: "",
			want:   []string{"cd '/src/api'\n"},
			absent: []string{"export"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WorkonScript(hc, tt.script, tt.quick)
			if !strings.HasPrefix(got, "cd '/src/api'\n") {
				t.Errorf("script should start with cd, got %q", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("script missing %q:\n%s", w, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("script should not contain %q:\n%s", a, got)
				}
			}
		})
	}
}
