package git

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Remote is a named git remote.
type Remote struct {
	Name string
	URL  string
}

// ListRemotes returns the remotes configured in the repository, sorted by name.
func ListRemotes(ctx context.Context, path string) ([]Remote, error) {
	output, err := outputGit(ctx, path, "remote")
	if err != nil {
		return nil, errors.Wrap(err, "list remotes")
	}

	var remotes []Remote
	for _, name := range strings.Fields(string(output)) {
		url, err := outputGit(ctx, path, "remote", "get-url", name)
		if err != nil {
			return nil, errors.Wrapf(err, "get url of remote %q", name)
		}
		remotes = append(remotes, Remote{Name: name, URL: strings.TrimSpace(string(url))})
	}
	slices.SortFunc(remotes, func(a, b Remote) int { return strings.Compare(a.Name, b.Name) })
	return remotes, nil
}

// AddRemote adds a remote to the repository.
func AddRemote(ctx context.Context, path, name, url string) error {
	return errors.Wrapf(runGit(ctx, path, "remote", "add", name, url), "add remote %q", name)
}

// RemoveRemote removes a remote from the repository.
func RemoveRemote(ctx context.Context, path, name string) error {
	return errors.Wrapf(runGit(ctx, path, "remote", "remove", name), "remove remote %q", name)
}

// SetRemoteURL changes the URL of an existing remote.
func SetRemoteURL(ctx context.Context, path, name, url string) error {
	return errors.Wrapf(runGit(ctx, path, "remote", "set-url", name, url), "set url of remote %q", name)
}

// ReconcileRemotes makes the repository's remotes match want: missing remotes
// are added and changed URLs updated. Remotes not in want are left alone.
// Changes are noted in out.
func ReconcileRemotes(ctx context.Context, path string, want []Remote, out io.Writer) error {
	have, err := ListRemotes(ctx, path)
	if err != nil {
		return err
	}

	for _, r := range want {
		i := slices.IndexFunc(have, func(h Remote) bool { return h.Name == r.Name })
		switch {
		case i < 0:
			if err := AddRemote(ctx, path, r.Name, r.URL); err != nil {
				return err
			}
			writeNote(out, "added remote %s (%s)", r.Name, r.URL)
		case have[i].URL != r.URL:
			if err := SetRemoteURL(ctx, path, r.Name, r.URL); err != nil {
				return err
			}
			writeNote(out, "updated remote %s (%s -> %s)", r.Name, have[i].URL, r.URL)
		}
	}
	return nil
}
