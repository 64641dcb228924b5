package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/raphi011/fw/internal/storage"
)

// EnvConfigDir overrides the config directory.
const EnvConfigDir = "FW_CONFIG_DIR"

// SettingsFile is the settings file name inside the config directory.
const SettingsFile = "settings.toml"

// DefaultWorkspace is used when no workspace root is configured.
const DefaultWorkspace = "~/workspace"

// GitLab holds GitLab import settings
type GitLab struct {
	Token string `mapstructure:"token"`
	URL   string `mapstructure:"url"` // API base, empty means gitlab.com
}

// Settings holds the fw settings
type Settings struct {
	Workspace          string   `mapstructure:"workspace"` // root for project checkouts
	Shell              []string `mapstructure:"shell"`     // e.g. ["bash", "-c"]
	DefaultAfterWorkon string   `mapstructure:"default_after_workon"`
	DefaultAfterClone  string   `mapstructure:"default_after_clone"`
	StrictTagFilter    bool     `mapstructure:"strict_tag_filter"` // unknown --tag values are errors
	GitHubToken        string   `mapstructure:"github_token"`
	GitLab             GitLab   `mapstructure:"gitlab"`

	// Dir is the config directory the settings were loaded from.
	Dir string `mapstructure:"-"`
}

// Default returns the default settings for the given config directory.
func Default(dir string) *Settings {
	return &Settings{
		Workspace:       mustExpand(DefaultWorkspace),
		Shell:           []string{"sh", "-c"},
		StrictTagFilter: true,
		Dir:             dir,
	}
}

// Dir returns the config directory: $FW_CONFIG_DIR or ~/.config/fw.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get home directory")
	}
	return filepath.Join(home, ".config", "fw"), nil
}

// Load reads settings.toml from dir, applying FW_* environment overrides
// (FW_WORKSPACE, FW_GITHUB_TOKEN, FW_GITLAB_TOKEN, ...).
// A missing settings file is not an error.
func Load(dir string) (*Settings, error) {
	def := Default(dir)

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, SettingsFile))
	v.SetConfigType("toml")
	v.SetEnvPrefix("FW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("workspace", DefaultWorkspace)
	v.SetDefault("shell", def.Shell)
	v.SetDefault("default_after_workon", "")
	v.SetDefault("default_after_clone", "")
	v.SetDefault("strict_tag_filter", def.StrictTagFilter)
	v.SetDefault("github_token", "")
	v.SetDefault("gitlab.token", "")
	v.SetDefault("gitlab.url", "")

	if _, err := os.Stat(filepath.Join(dir, SettingsFile)); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return def, errors.Wrapf(err, "read %s", SettingsFile)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return def, errors.Wrapf(err, "parse %s", SettingsFile)
	}
	s.Dir = dir

	if err := ValidatePath(s.Workspace, "workspace"); err != nil {
		return def, err
	}
	ws, err := ExpandPath(s.Workspace)
	if err != nil {
		return def, errors.Wrap(err, "expand workspace")
	}
	s.Workspace = ws

	if len(s.Shell) == 0 {
		s.Shell = def.Shell
	}

	return s, nil
}

// ProjectsDir returns the directory holding one file per project.
func (s *Settings) ProjectsDir() string {
	return filepath.Join(s.Dir, "projects")
}

// TagsDir returns the directory holding one file per tag.
func (s *Settings) TagsDir() string {
	return filepath.Join(s.Dir, "tags")
}

// SetWorkspace persists a new workspace root into settings.toml, keeping all
// other keys in the file untouched. Environment overrides are never written.
func SetWorkspace(dir, workspace string) error {
	path := filepath.Join(dir, SettingsFile)

	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "read %s", SettingsFile)
	}
	raw["workspace"] = workspace

	return storage.SaveTOML(path, raw)
}

// ValidatePath checks that the path is absolute or starts with ~
func ValidatePath(path, fieldName string) error {
	if path == "" || path[0] == '~' || filepath.IsAbs(path) {
		return nil
	}
	return errors.Newf("%s must be absolute or start with ~, got: %q", fieldName, path)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "expand ~")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

type ctxKey struct{}

// WithSettings attaches settings to the context.
func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the settings stored in ctx, or defaults for the
// config directory if none are attached.
func FromContext(ctx context.Context) *Settings {
	if s, ok := ctx.Value(ctxKey{}).(*Settings); ok {
		return s
	}
	dir, _ := Dir()
	return Default(dir)
}

type workDirKey struct{}

// WithWorkDir attaches the invocation's working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx, falling
// back to os.Getwd when none (or an empty one) is attached.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
