package cmd

import (
	"fmt"
	"os"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/configuration"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/depcheck"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/project"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/report"
	"github.com/spf13/cobra"
)

func newDependencyCheckSummaryCmd(opts *options) *cobra.Command {
	var list bool
	var cmd = &cobra.Command{
		Use:   "dependency-check-summary",
		Short: "Summarize an OWASP Dependency-Check XML report as Markdown",
		Long:  "Summarize an OWASP Dependency-Check XML report as Markdown.\nThe report paths can be overridden with $DC_XML and $DC_HTML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config.DependencyCheck
			summary, err := depcheck.ParseFile(opts.fs, opts.logger, cfg.XML)
			if err != nil {
				return err
			}
			out, closeOut, err := opts.markdown(cmd)
			if err != nil {
				return err
			}
			report.PrintDependencyCheck(out, summary, cfg.HTML, list)
			return closeOut()
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the vulnerabilities of each dependency")
	return cmd
}

func newDependencyCheckCmd(opts *options) *cobra.Command {
	var p depcheck.Params
	var cmd = &cobra.Command{
		Use:   "dependency-check",
		Short: "Run the OWASP Dependency-Check scanner bundled with the project",
		Long:  "Run the OWASP Dependency-Check scanner bundled with the project.\nThe NVD API key is read from $" + configuration.EnvNVDAPIKey + ".",
		// unsupported scanner options are ignored
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			workingDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			root, err := project.Root(workingDir)
			if err != nil {
				return err
			}
			opts.logger.Debug("project root", "path", root)
			params := depcheck.DefaultParams(root, opts.config.DependencyCheck)
			for _, o := range []struct {
				flag  string
				value string
				dst   *string
			}{
				{"project", p.Project, &params.Project},
				{"format", p.Format, &params.Format},
				{"out", p.Out, &params.Out},
				{"scan", p.Scan, &params.Scan},
			} {
				if cmd.Flags().Changed(o.flag) {
					*o.dst = o.value
				}
			}
			apiKey, err := configuration.RequireEnv(configuration.EnvNVDAPIKey)
			if err != nil {
				return err
			}
			run := opts.run
			if run == nil {
				run = depcheck.DefaultRun(cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return depcheck.Run(cmd.Context(), opts.fs, opts.logger, cmd.OutOrStdout(), run, depcheck.ScannerPath(root), params, apiKey)
		},
	}
	cmd.Flags().StringVar(&p.Project, "project", "", "project name (default from configuration)")
	cmd.Flags().StringVar(&p.Format, "format", "", "report format (default from configuration)")
	cmd.Flags().StringVar(&p.Out, "out", "", "report directory (default <project root>/dependency-check-report)")
	cmd.Flags().StringVar(&p.Scan, "scan", "", "path to scan (default <project root>)")
	return cmd
}
