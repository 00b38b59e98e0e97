package cmd

import (
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/coverage"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/report"
	"github.com/spf13/cobra"
)

// lowestPackages is the length of the worst packages list of the Markdown report.
const lowestPackages = 5

func newCoverageCmd(opts *options) *cobra.Command {
	var path string
	var cmd = &cobra.Command{
		Use:   "coverage",
		Short: "List the classes and packages with the lowest instruction coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config.Coverage
			if path == "" {
				path = cfg.CSV
			}
			ds, err := coverage.LoadFile(opts.fs, opts.logger, path, coverage.InstructionColumns)
			if err != nil {
				return err
			}
			logSkipped(opts, ds)
			ranked := coverage.RankClasses(ds.Records)
			a := coverage.Aggregate(ranked)
			report.PrintRanking(cmd.OutOrStdout(), report.Ranking{
				Analyzed:         len(ranked),
				ClassThreshold:   cfg.ClassThreshold,
				PackageThreshold: cfg.PackageThreshold,
				MaxClasses:       cfg.MaxClasses,
				Classes:          coverage.ClassesBelow(ranked, cfg.ClassThreshold, cfg.MaxClasses),
				Packages:         coverage.Top(coverage.RankPackages(a.Packages), cfg.MaxPackages),
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "csv", "", "path to the JaCoCo CSV report (default from configuration)")
	return cmd
}

func newCoverageDetailedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage-detailed <csv_path>",
		Short: "Print global and per-package coverage with recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config.Coverage
			ds, err := coverage.LoadFile(opts.fs, opts.logger, args[0], coverage.AllColumns)
			if err != nil {
				return err
			}
			logSkipped(opts, ds)
			a := coverage.Aggregate(ds.Records)
			ranked := coverage.RankPackages(a.Packages)
			report.PrintDetailed(cmd.OutOrStdout(), report.Detailed{
				Totals:           a.Totals,
				Packages:         ranked,
				ClassThreshold:   cfg.ClassThreshold,
				PackageThreshold: cfg.PackageThreshold,
				Attention:        coverage.NeedsAttention(ranked, cfg.PackageThreshold, cfg.MaxPackageClasses),
				Advice:           coverage.Recommend(a, cfg.Recommendations),
				NextSteps:        cfg.NextSteps,
			})
			return nil
		},
	}
}

func newCoveragePackagesCmd(opts *options) *cobra.Command {
	var path string
	var cmd = &cobra.Command{
		Use:   "coverage-packages",
		Short: "Print the coverage of every package as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config.Coverage
			if path == "" {
				path = cfg.CSV
			}
			ds, err := coverage.LoadFile(opts.fs, opts.logger, path, coverage.AllColumns)
			if err != nil {
				return err
			}
			logSkipped(opts, ds)
			a := coverage.Aggregate(coverage.WithPackage(ds.Records))
			out, closeOut, err := opts.markdown(cmd)
			if err != nil {
				return err
			}
			report.PrintPackages(out, report.Packages{
				Packages:  coverage.SortByName(a.Packages),
				Threshold: cfg.ClassThreshold,
				Lowest:    coverage.PackagesBelow(coverage.RankPackages(a.Packages), cfg.ClassThreshold, lowestPackages),
			})
			return closeOut()
		},
	}
	cmd.Flags().StringVar(&path, "csv", "", "path to the JaCoCo CSV report (default from configuration)")
	return cmd
}

func logSkipped(opts *options, ds *coverage.Dataset) {
	if ds.Skipped > 0 {
		opts.logger.Info("skipped malformed rows", "count", ds.Skipped)
	}
}
