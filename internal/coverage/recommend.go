package coverage

import "github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/configuration"

// Advice is a recommendation rule that fired, with the coverage that triggered it.
type Advice struct {
	configuration.Recommendation
	Coverage float64
}

// Recommend evaluates the rules in order. A rule without packages looks at the
// report totals; otherwise it fires on the lowest coverage among its packages,
// where a package absent from the report counts as fully covered.
func Recommend(a *Analysis, rules []configuration.Recommendation) []Advice {
	var advice []Advice
	for _, rule := range rules {
		metric := Metric(rule.Metric)
		pct := 100.0
		if len(rule.Packages) == 0 {
			pct = a.Totals.Get(metric).Pct()
		}
		for _, name := range rule.Packages {
			if p, ok := a.Package(name); ok {
				pct = min(pct, p.Get(metric).Pct())
			}
		}
		if pct < rule.Below {
			advice = append(advice, Advice{Recommendation: rule, Coverage: pct})
		}
	}
	return advice
}
