package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/project"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {

	t.Run("inside a git repository", func(t *testing.T) {
		// given
		repoDir := t.TempDir()
		_, err := git.PlainInit(repoDir, false)
		require.NoError(t, err)
		subDir := filepath.Join(repoDir, "src", "main")
		require.NoError(t, os.MkdirAll(subDir, 0o755))
		// when
		root, err := project.Root(subDir)
		// then
		require.NoError(t, err)
		assertSameDir(t, repoDir, root)
	})

	t.Run("outside a git repository", func(t *testing.T) {
		// given
		dir := t.TempDir()
		// when
		root, err := project.Root(dir)
		// then
		require.NoError(t, err)
		assertSameDir(t, dir, root)
	})
}

func assertSameDir(t *testing.T, expected, actual string) {
	t.Helper()
	e, err := filepath.EvalSymlinks(expected)
	require.NoError(t, err)
	a, err := filepath.EvalSymlinks(actual)
	require.NoError(t, err)
	assert.Equal(t, e, a)
}
