package report

import (
	"fmt"
	"io"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/coverage"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/depcheck"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/jacoco"
)

// Packages is the input of the per-package Markdown report.
type Packages struct {
	// Packages are sorted by name.
	Packages  []*coverage.PackageAggregate
	Threshold float64
	// Lowest are the worst packages below Threshold, already limited.
	Lowest []*coverage.PackageAggregate
}

func PrintPackages(w io.Writer, p Packages) {
	fmt.Fprintln(w, "## Coverage Analysis by Package")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Package | Instructions | Branches | Lines | Methods | Classes |")
	fmt.Fprintln(w, "|---------|--------------|----------|-------|---------|---------|")
	for _, pkg := range p.Packages {
		fmt.Fprintf(w, "| %s | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %d |\n",
			pkg.Name,
			pkg.Instruction.Pct(),
			pkg.Branch.Pct(),
			pkg.Line.Pct(),
			pkg.Method.Pct(),
			pkg.DistinctClasses())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Packages with Lowest Coverage")
	fmt.Fprintln(w)
	if len(p.Lowest) == 0 {
		fmt.Fprintf(w, "No package below %g%% instruction coverage.\n", p.Threshold)
		return
	}
	for _, pkg := range p.Lowest {
		fmt.Fprintf(w, "- **%s**: %.1f%%\n", pkg.Name, pkg.Instruction.Pct())
	}
}

func PrintJacoco(w io.Writer, table jacoco.CounterTable, htmlPath string) {
	fmt.Fprintln(w, "## JaCoCo Coverage")
	fmt.Fprintln(w, "| Type | Covered | Missed | Total | Coverage (%) |")
	fmt.Fprintln(w, "|------|---------|--------|-------|--------------|")
	for _, c := range table.Rows() {
		fmt.Fprintf(w, "| %s | %d | %d | %d | %.2f |\n", c.Type, c.Covered, c.Missed, c.Total(), c.Pct())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[View JaCoCo HTML report](%s)\n", htmlPath)
}

// PrintDependencyCheck writes the summary as Markdown. With list set, the
// vulnerabilities of each dependency are listed too.
func PrintDependencyCheck(w io.Writer, s *depcheck.Summary, htmlPath string, list bool) {
	fmt.Fprintln(w, "## Dependency-Check Summary")
	fmt.Fprintf(w, "- Total dependencies analyzed: %d\n", s.Dependencies)
	fmt.Fprintf(w, "- Vulnerable dependencies: %d\n", s.Vulnerable)
	fmt.Fprintln(w)
	if len(s.Severities) == 0 {
		fmt.Fprintln(w, "No vulnerabilities found!")
	} else {
		fmt.Fprintln(w, "### Vulnerabilities found by severity:")
		fmt.Fprintln(w, "| Severity | Count |")
		fmt.Fprintln(w, "|----------|-------|")
		for _, sev := range s.Severities {
			fmt.Fprintf(w, "| %s | %d |\n", sev, s.CountsBySeverity[sev])
		}
	}
	if list && len(s.Findings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "### Vulnerable dependencies:")
		for _, f := range s.Findings {
			fmt.Fprintf(w, "- **%s**\n", f.Dependency)
			for _, v := range f.Vulnerabilities {
				fmt.Fprintf(w, "  - %s (%s)\n", v.Name, v.Severity)
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[View Dependency-Check HTML report](%s)\n", htmlPath)
}
