package input_test

import (
	"io"
	"testing"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {

	t.Run("existing file", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "reports/jacoco.csv", []byte("PACKAGE,CLASS\n"), 0o644))
		// when
		f, err := input.Open(fs, "reports/jacoco.csv")
		// then
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "PACKAGE,CLASS\n", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		// when
		_, err := input.Open(afero.NewMemMapFs(), "reports/jacoco.csv")
		// then
		require.EqualError(t, err, "file not found: reports/jacoco.csv")
		assert.ErrorIs(t, err, input.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("reports", 0o755))
		// when
		_, err := input.Open(fs, "reports")
		// then
		require.EqualError(t, err, "reports is a directory")
	})
}
