package depcheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/configuration"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/spf13/afero"
)

// Params are the scanner options that can be overridden from the command line.
type Params struct {
	Project string
	Format  string
	Out     string
	Scan    string
}

// ScannerPath returns the location of the Dependency-Check launcher inside the project.
func ScannerPath(root string) string {
	return filepath.Join(root, "bin", "dependency-check", "bin", "dependency-check.sh")
}

// DefaultParams scans the whole project and writes the report next to it.
func DefaultParams(root string, config configuration.DependencyCheck) Params {
	return Params{
		Project: config.Project,
		Format:  config.Format,
		Out:     filepath.Join(root, "dependency-check-report"),
		Scan:    root,
	}
}

// Command returns the scanner command line.
func Command(scanner string, p Params, apiKey string) []string {
	return []string{
		scanner,
		"--project", p.Project,
		"--scan", p.Scan,
		"--format", p.Format,
		"--out", p.Out,
		"--nvdApiKey", apiKey,
	}
}

type RunFunc func(ctx context.Context, logger *slog.Logger, name string, args ...string) error

// DefaultRun runs the scanner and waits for it to exit. The returned error is
// an *exec.ExitError when the scanner exits with a non-zero status.
func DefaultRun(stdout, stderr io.Writer) RunFunc {
	return func(ctx context.Context, logger *slog.Logger, name string, args ...string) error {
		c := exec.CommandContext(ctx, name, args...)
		c.Stdout = stdout
		c.Stderr = stderr
		if err := c.Start(); err != nil {
			return fmt.Errorf("failed to start dependency-check: %w", err)
		}
		logger.Debug("dependency-check started", "pid", c.Process.Pid)
		if err := c.Wait(); err != nil {
			return fmt.Errorf("failed while running dependency-check: %w", err)
		}
		return nil
	}
}

// Run executes the scanner with the given parameters and reports where the
// results were written.
func Run(ctx context.Context, fs afero.Fs, logger *slog.Logger, out io.Writer, run RunFunc, scanner string, p Params, apiKey string) error {
	if _, err := fs.Stat(scanner); err != nil {
		return fmt.Errorf("%w: %s", input.ErrNotFound, scanner)
	}
	cmdline := Command(scanner, p, apiKey)
	display := strings.Join(Command(scanner, p, mask(apiKey)), " ")
	fmt.Fprintf(out, "Running: %s\n", display)
	logger.Debug("running dependency-check", "project", p.Project, "format", p.Format, "scan", p.Scan, "out", p.Out)
	if err := run(ctx, logger, cmdline[0], cmdline[1:]...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report saved to: %s\n", p.Out)
	return nil
}

func mask(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
