// Package project locates the root directory of the project being analyzed.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Root returns the root of the git worktree containing dir, or dir itself when
// it is not inside a git repository.
func Root(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open git repository at %s: %w", abs, err)
	}
	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get git worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}
