package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raphi011/fw/internal/outcome"
)

// Clone clones url into path. It fails if path exists and is not empty.
// Git's output is written to out.
func Clone(ctx context.Context, url, path string, out io.Writer) error {
	empty, err := IsEmptyDir(path)
	if err != nil {
		return outcome.AsFailure(err)
	}
	if !empty {
		return outcome.Other("destination %s exists and is not empty", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return outcome.AsFailure(err)
	}
	return transcriptGit(ctx, out, "", "clone", url, path)
}

func writeNote(out io.Writer, format string, args ...any) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}
