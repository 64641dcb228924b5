package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// errRunFailed is returned by fan-out commands after their report was
// printed. It only sets the exit status.
var errRunFailed = errors.New("run had failures")

// reportError prints err and its hints to w and returns the exit code.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, errRunFailed) {
		return 1
	}

	fmt.Fprintf(w, "fw: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'fw -h' for help")
	return 1
}
