package configuration

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the subcommands.
const (
	EnvJacocoXML           = "JACOCO_XML"
	EnvJacocoHTML          = "JACOCO_HTML"
	EnvDependencyCheckXML  = "DC_XML"
	EnvDependencyCheckHTML = "DC_HTML"
	EnvNVDAPIKey           = "NVD_API_KEY"
	EnvGitHubStepSummary   = "GITHUB_STEP_SUMMARY"
)

// ErrMissingEnv is returned when a required environment variable is not set.
var ErrMissingEnv = errors.New("environment variable not set")

type Configuration struct {
	Coverage        Coverage        `yaml:"coverage"`
	Jacoco          Jacoco          `yaml:"jacoco"`
	DependencyCheck DependencyCheck `yaml:"dependency-check"`
}

type Coverage struct {
	CSV               string           `yaml:"csv"`
	ClassThreshold    float64          `yaml:"class-threshold"`
	PackageThreshold  float64          `yaml:"package-threshold"`
	MaxClasses        int              `yaml:"max-classes"`
	MaxPackages       int              `yaml:"max-packages"`
	MaxPackageClasses int              `yaml:"max-package-classes"`
	Recommendations   []Recommendation `yaml:"recommendations"`
	NextSteps         []string         `yaml:"next-steps"`
}

// Recommendation fires when the selected metric of any listed package (or of the
// whole report, when Packages is empty) is below the threshold.
type Recommendation struct {
	Name     string   `yaml:"name"`
	Icon     string   `yaml:"icon"`
	Title    string   `yaml:"title"`
	Packages []string `yaml:"packages"`
	Metric   string   `yaml:"metric"`
	Below    float64  `yaml:"below"`
	Hints    []string `yaml:"hints"`
}

type Jacoco struct {
	XML  string `yaml:"xml"`
	HTML string `yaml:"html"`
}

type DependencyCheck struct {
	XML     string `yaml:"xml"`
	HTML    string `yaml:"html"`
	Project string `yaml:"project"`
	Format  string `yaml:"format"`
}

var metrics = map[string]bool{
	"instruction": true,
	"branch":      true,
	"line":        true,
	"method":      true,
	"class":       true,
}

// New loads the configuration file at the given path on top of the defaults.
// An empty path returns the defaults.
func New(fs afero.Fs, path string) (Configuration, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return c, c.Validate()
}

// ApplyEnv overrides the report paths with the values of the JACOCO_* and DC_* variables.
func (c *Configuration) ApplyEnv() {
	if v := os.Getenv(EnvJacocoXML); v != "" {
		c.Jacoco.XML = v
	}
	if v := os.Getenv(EnvJacocoHTML); v != "" {
		c.Jacoco.HTML = v
	}
	if v := os.Getenv(EnvDependencyCheckXML); v != "" {
		c.DependencyCheck.XML = v
	}
	if v := os.Getenv(EnvDependencyCheckHTML); v != "" {
		c.DependencyCheck.HTML = v
	}
}

func (c Configuration) Validate() error {
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"coverage.class-threshold", c.Coverage.ClassThreshold},
		{"coverage.package-threshold", c.Coverage.PackageThreshold},
	} {
		if t.value < 0 || t.value > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %g", t.name, t.value)
		}
	}
	for _, r := range c.Coverage.Recommendations {
		if !metrics[r.Metric] {
			return fmt.Errorf("recommendation %q: unknown metric %q", r.Name, r.Metric)
		}
		if r.Below < 0 || r.Below > 100 {
			return fmt.Errorf("recommendation %q: threshold must be between 0 and 100, got %g", r.Name, r.Below)
		}
	}
	return nil
}

// RequireEnv returns the value of a mandatory environment variable.
func RequireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s: %w", name, ErrMissingEnv)
	}
	return v, nil
}
