package gitrepo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DetectRoot finds the working-tree root of the repository enclosing dir,
// walking up through parent directories the way git itself resolves a
// repository from a subdirectory.
func DetectRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("no enclosing git repository at %s: %w", dir, err)
		}
		return "", fmt.Errorf("open enclosing repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolve worktree root: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// HeadRevision reports the commit a checkout currently sits at. Empty when
// the repository has no commits yet. Used for post-reconcile diagnostics
// only, so it reads local state and never shells out.
func HeadRevision(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("open checkout: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}
