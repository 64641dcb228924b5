package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Enabled reports whether live progress should be drawn on w: it must be a
// terminal and TERM must not be "dumb".
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
