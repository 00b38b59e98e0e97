package configuration_test

import (
	"errors"
	"os"
	"testing"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/configuration"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration(t *testing.T) {

	t.Run("empty filename", func(t *testing.T) {
		// when
		c, err := configuration.New(afero.NewMemMapFs(), "")
		// then
		require.NoError(t, err)
		assert.Equal(t, configuration.Default(), c)
	})

	t.Run("missing file", func(t *testing.T) {
		// when
		_, err := configuration.New(afero.NewMemMapFs(), "ci-report.yaml")
		// then
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", nil, 0o644))
		// when
		c, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.NoError(t, err)
		assert.Equal(t, configuration.Default(), c)
	})

	t.Run("partial overrides keep the defaults", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		content := `coverage:
  csv: build/jacoco.csv
  class-threshold: 60
dependency-check:
  project: billing-api
`
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", []byte(content), 0o644))
		// when
		c, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.NoError(t, err)
		assert.Equal(t, "build/jacoco.csv", c.Coverage.CSV)
		assert.InDelta(t, 60.0, c.Coverage.ClassThreshold, 0.0001)
		assert.InDelta(t, 70.0, c.Coverage.PackageThreshold, 0.0001)
		assert.Equal(t, 20, c.Coverage.MaxClasses)
		assert.Len(t, c.Coverage.Recommendations, 3)
		assert.Equal(t, "billing-api", c.DependencyCheck.Project)
		assert.Equal(t, "HTML", c.DependencyCheck.Format)
	})

	t.Run("custom recommendations replace the defaults", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		content := `coverage:
  recommendations:
    - name: handlers
      icon: "🧭"
      title: "Handlers need tests"
      packages:
        - com.acme.http
      metric: line
      below: 75
      hints:
        - Cover 4xx responses
`
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", []byte(content), 0o644))
		// when
		c, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.NoError(t, err)
		require.Len(t, c.Coverage.Recommendations, 1)
		r := c.Coverage.Recommendations[0]
		assert.Equal(t, "handlers", r.Name)
		assert.Equal(t, []string{"com.acme.http"}, r.Packages)
		assert.Equal(t, "line", r.Metric)
		assert.InDelta(t, 75.0, r.Below, 0.0001)
		assert.Equal(t, []string{"Cover 4xx responses"}, r.Hints)
	})

	t.Run("invalid file", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", []byte("coverage:\n  - csv\n"), 0o644))
		// when
		_, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.Error(t, err)
	})

	t.Run("unknown recommendation metric", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		content := `coverage:
  recommendations:
    - name: complexity
      metric: complexity
      below: 50
`
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", []byte(content), 0o644))
		// when
		_, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.EqualError(t, err, `recommendation "complexity": unknown metric "complexity"`)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "ci-report.yaml", []byte("coverage:\n  package-threshold: 170\n"), 0o644))
		// when
		_, err := configuration.New(fs, "ci-report.yaml")
		// then
		require.EqualError(t, err, "coverage.package-threshold must be between 0 and 100, got 170")
	})
}

func TestApplyEnv(t *testing.T) {

	t.Run("no variables keep the defaults", func(t *testing.T) {
		// given
		t.Setenv(configuration.EnvJacocoXML, "")
		t.Setenv(configuration.EnvDependencyCheckXML, "")
		c := configuration.Default()
		// when
		c.ApplyEnv()
		// then
		assert.Equal(t, "target/site/jacoco/jacoco.xml", c.Jacoco.XML)
		assert.Equal(t, "dependency-check-report/dependency-check-report.xml", c.DependencyCheck.XML)
	})

	t.Run("variables override the paths", func(t *testing.T) {
		// given
		t.Setenv(configuration.EnvJacocoXML, "out/jacoco.xml")
		t.Setenv(configuration.EnvJacocoHTML, "out/jacoco/index.html")
		t.Setenv(configuration.EnvDependencyCheckXML, "out/dc.xml")
		t.Setenv(configuration.EnvDependencyCheckHTML, "out/dc.html")
		c := configuration.Default()
		// when
		c.ApplyEnv()
		// then
		assert.Equal(t, "out/jacoco.xml", c.Jacoco.XML)
		assert.Equal(t, "out/jacoco/index.html", c.Jacoco.HTML)
		assert.Equal(t, "out/dc.xml", c.DependencyCheck.XML)
		assert.Equal(t, "out/dc.html", c.DependencyCheck.HTML)
	})
}

func TestRequireEnv(t *testing.T) {

	t.Run("set", func(t *testing.T) {
		// given
		t.Setenv(configuration.EnvNVDAPIKey, "secret-key")
		// when
		v, err := configuration.RequireEnv(configuration.EnvNVDAPIKey)
		// then
		require.NoError(t, err)
		assert.Equal(t, "secret-key", v)
	})

	t.Run("missing", func(t *testing.T) {
		// given
		t.Setenv(configuration.EnvNVDAPIKey, "")
		// when
		_, err := configuration.RequireEnv(configuration.EnvNVDAPIKey)
		// then
		require.EqualError(t, err, "NVD_API_KEY: environment variable not set")
		assert.ErrorIs(t, err, configuration.ErrMissingEnv)
	})
}
