package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/configuration"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/depcheck"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// A non-zero exit status of the Dependency-Check scanner becomes the exit status.
func Execute() {
	if err := NewRootCmd(afero.NewOsFs(), nil).Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode returns the exit status of a failed scanner, or 1 for any other
// error, including a scanner killed by a signal.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// options are shared by all subcommands. The configuration and logger are set
// once the flags are parsed.
type options struct {
	fs          afero.Fs
	run         depcheck.RunFunc
	configFile  string
	debug       bool
	stepSummary bool

	config configuration.Configuration
	logger *slog.Logger
}

// NewRootCmd returns the ci-report command. When run is nil, the scanner is
// executed as a child process sharing the command output.
func NewRootCmd(fs afero.Fs, run depcheck.RunFunc) *cobra.Command {
	opts := &options{fs: fs, run: run}
	var cmd = &cobra.Command{
		Use:   "ci-report",
		Short: "Summarize JaCoCo coverage and OWASP Dependency-Check reports for CI",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// arguments are valid at this point, errors are no longer usage errors
			cmd.SilenceUsage = true
			config, err := configuration.New(opts.fs, opts.configFile)
			if err != nil {
				return err
			}
			config.ApplyEnv()
			opts.config = config
			level := slog.LevelInfo
			if opts.debug {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			opts.logger.Debug("configuration loaded", "path", opts.configFile)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to the YAML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "debug mode")
	cmd.PersistentFlags().BoolVar(&opts.stepSummary, "step-summary", false, "also append Markdown output to the file named by $"+configuration.EnvGitHubStepSummary)
	cmd.AddCommand(
		newCoverageCmd(opts),
		newCoverageDetailedCmd(opts),
		newCoveragePackagesCmd(opts),
		newJacocoSummaryCmd(opts),
		newDependencyCheckSummaryCmd(opts),
		newDependencyCheckCmd(opts),
	)
	return cmd
}

// markdown returns the writer of the Markdown reports. With --step-summary and
// $GITHUB_STEP_SUMMARY set, the report is also appended to the step summary file.
func (o *options) markdown(cmd *cobra.Command) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if !o.stepSummary {
		return cmd.OutOrStdout(), noop, nil
	}
	path := os.Getenv(configuration.EnvGitHubStepSummary)
	if path == "" {
		o.logger.Warn("step summary requested but not available", "env", configuration.EnvGitHubStepSummary)
		return cmd.OutOrStdout(), noop, nil
	}
	f, err := o.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open step summary %s: %w", path, err)
	}
	o.logger.Debug("appending to step summary", "path", path)
	return io.MultiWriter(cmd.OutOrStdout(), f), f.Close, nil
}
