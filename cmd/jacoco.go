package cmd

import (
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/jacoco"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/report"
	"github.com/spf13/cobra"
)

func newJacocoSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "jacoco-summary",
		Short: "Print the report counters of a JaCoCo XML report as Markdown",
		Long:  "Print the report counters of a JaCoCo XML report as Markdown.\nThe report paths can be overridden with $JACOCO_XML and $JACOCO_HTML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config.Jacoco
			table, err := jacoco.ParseFile(opts.fs, opts.logger, cfg.XML)
			if err != nil {
				return err
			}
			out, closeOut, err := opts.markdown(cmd)
			if err != nil {
				return err
			}
			report.PrintJacoco(out, table, cfg.HTML)
			return closeOut()
		},
	}
}
