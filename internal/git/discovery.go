package git

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FindAllRepos returns paths to all git repositories in basePath (direct children only)
func FindAllRepos(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", basePath)
	}

	var repos []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		repoPath := filepath.Join(basePath, entry.Name())
		if IsRepo(repoPath) {
			repos = append(repos, repoPath)
		}
	}

	return repos, nil
}
