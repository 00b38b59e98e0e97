package coverage

import (
	"cmp"
	"slices"
)

// RankClasses returns the records that have instructions, sorted by ascending
// instruction coverage. Records with equal coverage keep their input order.
func RankClasses(records []Record) []Record {
	ranked := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Instruction.Total() > 0 {
			ranked = append(ranked, r)
		}
	}
	return SortClasses(ranked)
}

// SortClasses returns a copy of the records sorted by ascending instruction
// coverage, keeping the input order of equal entries.
func SortClasses(records []Record) []Record {
	sorted := slices.Clone(records)
	sortStable(sorted, func(r Record) float64 { return r.Instruction.Pct() })
	return sorted
}

// RankPackages returns the packages sorted by ascending instruction coverage.
// Packages with equal coverage keep their order of first appearance.
func RankPackages(packages []*PackageAggregate) []*PackageAggregate {
	ranked := slices.Clone(packages)
	sortStable(ranked, func(p *PackageAggregate) float64 { return p.Instruction.Pct() })
	return ranked
}

// SortByName returns the packages sorted by name.
func SortByName(packages []*PackageAggregate) []*PackageAggregate {
	sorted := slices.Clone(packages)
	slices.SortStableFunc(sorted, func(a, b *PackageAggregate) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return sorted
}

// ClassesBelow returns up to limit of the ranked records whose instruction
// coverage is below threshold. A limit <= 0 means no limit.
func ClassesBelow(ranked []Record, threshold float64, limit int) []Record {
	return below(ranked, func(r Record) float64 { return r.Instruction.Pct() }, threshold, limit)
}

// PackagesBelow returns up to limit of the ranked packages whose instruction
// coverage is below threshold. A limit <= 0 means no limit.
func PackagesBelow(ranked []*PackageAggregate, threshold float64, limit int) []*PackageAggregate {
	return below(ranked, func(p *PackageAggregate) float64 { return p.Instruction.Pct() }, threshold, limit)
}

// Top returns the first n items, or all of them when n <= 0.
func Top[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func sortStable[T any](items []T, pct func(T) float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(pct(a), pct(b))
	})
}

func below[T any](items []T, pct func(T) float64, threshold float64, limit int) []T {
	var result []T
	for _, item := range items {
		if pct(item) < threshold {
			result = append(result, item)
		}
	}
	return Top(result, limit)
}

// Attention is a package below the warning threshold with its weakest classes.
type Attention struct {
	Package *PackageAggregate
	Classes []Record
}

// NeedsAttention returns the ranked packages below threshold, each with up to
// maxClasses of its classes that are also below threshold, worst first.
func NeedsAttention(ranked []*PackageAggregate, threshold float64, maxClasses int) []Attention {
	var result []Attention
	for _, p := range PackagesBelow(ranked, threshold, 0) {
		result = append(result, Attention{
			Package: p,
			Classes: ClassesBelow(SortClasses(p.Classes), threshold, maxClasses),
		})
	}
	return result
}
