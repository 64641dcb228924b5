package hooks

import (
	"fmt"
	"strings"

	"github.com/raphi011/fw/internal/cmd"
)

// WorkonScript returns sourceable shell code that changes into the project
// directory and, unless quick is set, runs the composed after-workon script
// with the FW_* variables exported.
func WorkonScript(hc Context, script string, quick bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cd %s\n", cmd.Quote(hc.Path))

	if quick || strings.TrimSpace(script) == "" {
		return b.String()
	}

	hc.Trigger = KindWorkon
	for _, kv := range hc.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		fmt.Fprintf(&b, "export %s=%s\n", name, cmd.Quote(value))
	}
	b.WriteString(SubstitutePlaceholders(script, hc))
	b.WriteString("\n")
	return b.String()
}
