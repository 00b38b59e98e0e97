package report

import (
	"fmt"
	"io"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/coverage"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Ranking is the input of the class ranking report.
type Ranking struct {
	// Analyzed is the number of classes that have instructions.
	Analyzed         int
	ClassThreshold   float64
	PackageThreshold float64
	// MaxClasses is the listing limit announced in the report title.
	MaxClasses int
	// Classes are the ranked classes below ClassThreshold, already limited.
	Classes []coverage.Record
	// Packages are the worst packages, already limited.
	Packages []*coverage.PackageAggregate
}

func PrintRanking(w io.Writer, r Ranking) {
	t := NewTheme(w)
	fmt.Fprintln(w, t.Title.Render("=== CLASSES WITH THE LOWEST TEST COVERAGE ==="))
	fmt.Fprintf(w, "Total classes analyzed: %s\n", humanize.Comma(int64(r.Analyzed)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Top %d classes with coverage < %g%%:\n", r.MaxClasses, r.ClassThreshold)
	fmt.Fprintln(w, t.rule())
	fmt.Fprintln(w, t.Header.Render(fmt.Sprintf("%-3s %s %-10s %-8s", "#", fit("Class", 50), "Coverage", "Instr.")))
	fmt.Fprintln(w, t.rule())
	for i, c := range r.Classes {
		pct := c.Instruction.Pct()
		fmt.Fprintf(w, "%-3d %s %s %-8s\n",
			i+1,
			fit(c.QualifiedName(), 50),
			t.Level(pct, r.ClassThreshold, r.PackageThreshold).Render(fmt.Sprintf("%-10.1f", pct)),
			humanize.Comma(int64(c.Instruction.Total())))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, t.Title.Render("=== ANALYSIS BY PACKAGE ==="))
	fmt.Fprintln(w, "Packages with the lowest coverage:")
	fmt.Fprintln(w, t.rule())
	fmt.Fprintln(w, t.Header.Render(fmt.Sprintf("%-3s %s %-10s %-8s", "#", fit("Package", 40), "Coverage", "Classes")))
	fmt.Fprintln(w, t.rule())
	for i, p := range r.Packages {
		pct := p.Instruction.Pct()
		fmt.Fprintf(w, "%-3d %s %s %-8d\n",
			i+1,
			fit(p.Name, 40),
			t.Level(pct, r.ClassThreshold, r.PackageThreshold).Render(fmt.Sprintf("%-10.1f", pct)),
			p.ClassCount())
	}
}

// Detailed is the input of the detailed coverage report.
type Detailed struct {
	Totals coverage.Counters
	// Packages are sorted by ascending instruction coverage.
	Packages         []*coverage.PackageAggregate
	ClassThreshold   float64
	PackageThreshold float64
	Attention        []coverage.Attention
	Advice           []coverage.Advice
	NextSteps        []string
}

var metricLabels = map[coverage.Metric]string{
	coverage.Instruction: "Instructions",
	coverage.Branch:      "Branches",
	coverage.Line:        "Lines",
	coverage.Method:      "Methods",
	coverage.Class:       "Classes",
}

func PrintDetailed(w io.Writer, d Detailed) {
	t := NewTheme(w)
	pct := func(v float64) string {
		return t.Level(v, d.ClassThreshold, d.PackageThreshold).Render(fmt.Sprintf("%.1f%%", v))
	}

	fmt.Fprintln(w, t.Title.Render("=== TEST COVERAGE REPORT ==="))
	fmt.Fprintln(w)

	fmt.Fprintln(w, t.Header.Render("📊 OVERALL COVERAGE:"))
	for _, m := range coverage.Metrics {
		fmt.Fprintf(w, "   %s: %s\n", metricLabels[m], pct(d.Totals.Get(m).Pct()))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, t.Header.Render("📁 COVERAGE BY PACKAGE:"))
	fmt.Fprintln(w, t.rule())
	fmt.Fprintln(w, t.Header.Render(fmt.Sprintf("%s %-8s %-8s %-8s %-8s %s",
		runewidth.FillRight("Package", 30), "Instr.", "Branch", "Line", "Method", "Classes")))
	fmt.Fprintln(w, t.rule())
	for _, p := range d.Packages {
		fmt.Fprintf(w, "%s %s %s %s %s %d\n",
			runewidth.FillRight(p.Name, 30),
			cell(t, p.Instruction.Pct(), d),
			cell(t, p.Branch.Pct(), d),
			cell(t, p.Line.Pct(), d),
			cell(t, p.Method.Pct(), d),
			p.ClassCount())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, t.Header.Render("🎯 AREAS THAT NEED MORE TESTS:"))
	fmt.Fprintln(w, t.rule())
	if len(d.Attention) == 0 {
		fmt.Fprintln(w, t.Good.Render(fmt.Sprintf("✅ All packages have adequate coverage (>= %g%%)", d.PackageThreshold)))
	}
	for _, a := range d.Attention {
		fmt.Fprintf(w, "📦 %s:\n", a.Package.Name)
		fmt.Fprintf(w, "   📈 Coverage: %s\n", pct(a.Package.Instruction.Pct()))
		fmt.Fprintf(w, "   📄 Classes in package: %d\n", a.Package.ClassCount())
		if len(a.Classes) > 0 {
			fmt.Fprintln(w, "   🔴 Classes with low coverage:")
			for _, c := range a.Classes {
				fmt.Fprintf(w, "      - %s: %s\n", c.Class, pct(c.Instruction.Pct()))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Header.Render("💡 RECOMMENDATIONS TO IMPROVE COVERAGE:"))
	fmt.Fprintln(w, t.rule())
	for _, a := range d.Advice {
		fmt.Fprintf(w, "%s %s %s\n", a.Icon, a.Title, t.Muted.Render(fmt.Sprintf("(%s %.1f%%)", a.Metric, a.Coverage)))
		for _, hint := range a.Hints {
			fmt.Fprintf(w, "   - %s\n", hint)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Header.Render("✅ NEXT STEPS:"))
	for i, step := range d.NextSteps {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
}

func cell(t Theme, v float64, d Detailed) string {
	return t.Level(v, d.ClassThreshold, d.PackageThreshold).Render(fmt.Sprintf("%-8s", fmt.Sprintf("%.1f%%", v)))
}
