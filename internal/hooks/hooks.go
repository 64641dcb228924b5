package hooks

import (
	"context"
	"regexp"
	"strings"

	"github.com/raphi011/fw/internal/cmd"
)

// Context holds the values for placeholder substitution and the
// environment exported to hook scripts.
type Context struct {
	Name    string            // project name
	Path    string            // absolute project path
	URL     string            // git url (origin)
	Trigger Kind              // clone or workon
	Env     map[string]string // custom variables for {key} placeholders
}

// Environ returns the FW_* variables exported to hook scripts and commands.
// FW_HOOK is only set when a trigger is known.
func (c Context) Environ() []string {
	env := []string{
		"FW_PROJECT_NAME=" + c.Name,
		"FW_PROJECT_PATH=" + c.Path,
		"FW_PROJECT_URL=" + c.URL,
	}
	if c.Trigger != "" {
		env = append(env, "FW_HOOK="+string(c.Trigger))
	}
	return env
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns for env variables.
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
//
// Static placeholders: {name}, {path}, {url}, {trigger}. Any other
// {key} is looked up in Context.Env. Unknown keys without default are
// left untouched, and shell parameter expansions like ${HOME} are never touched.
func SubstitutePlaceholders(script string, ctx Context) string {
	static := map[string]string{
		"name":    ctx.Name,
		"path":    ctx.Path,
		"url":     ctx.URL,
		"trigger": string(ctx.Trigger),
	}

	var b strings.Builder
	last := 0
	for _, m := range envPlaceholderRegex.FindAllStringSubmatchIndex(script, -1) {
		start, end := m[0], m[1]
		if start > 0 && script[start-1] == '$' {
			continue
		}

		key := script[m[2]:m[3]]
		isRaw := m[4] != -1
		hasDefault := m[6] != -1

		val, ok := static[key]
		if !ok {
			val, ok = ctx.Env[key]
		}
		if !ok {
			if !hasDefault {
				continue
			}
			val = script[m[6]:m[7]]
		}
		if !isRaw {
			val = cmd.Quote(val)
		}

		b.WriteString(script[last:start])
		b.WriteString(val)
		last = end
	}
	b.WriteString(script[last:])
	return b.String()
}

// Run executes a composed hook script in the project directory through shell.
// An empty script is a no-op and reports success.
func Run(ctx context.Context, shell []string, script string, hc Context) cmd.Result {
	if strings.TrimSpace(script) == "" {
		return cmd.Result{}
	}
	return cmd.Shell(ctx, shell, hc.Path, SubstitutePlaceholders(script, hc), hc.Environ())
}
