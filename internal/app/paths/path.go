package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizeManifestPath turns a user supplied recipes.cfg path into an
// absolute native path.
func NormalizeManifestPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrManifestPathRequired
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve manifest path: %w", err)
	}

	return absPath, nil
}

// RepoRootForManifest derives the repository root from a manifest path. The
// manifest lives at <root>/infra/config/recipes.cfg, so the root is three
// directories up.
func RepoRootForManifest(manifestPath string) string {
	return filepath.Dir(filepath.Dir(filepath.Dir(manifestPath)))
}

// DefaultManifestPath is where a repository keeps its manifest when the
// caller did not point at one explicitly.
func DefaultManifestPath(repoRoot string) string {
	return filepath.Join(repoRoot, "infra", "config", "recipes.cfg")
}
