package coverage

// PackageAggregate sums the counters of every class row of one package.
type PackageAggregate struct {
	Name string
	Counters
	// Classes keeps the package rows in input order.
	Classes []Record

	distinct map[string]struct{}
}

func newPackageAggregate(name string) *PackageAggregate {
	return &PackageAggregate{
		Name:     name,
		distinct: make(map[string]struct{}),
	}
}

func (p *PackageAggregate) add(r Record) {
	p.Counters = p.Counters.add(r.Counters())
	p.Classes = append(p.Classes, r)
	p.distinct[r.Class] = struct{}{}
}

// ClassCount returns the number of rows folded into the package.
func (p *PackageAggregate) ClassCount() int {
	return len(p.Classes)
}

// DistinctClasses returns the number of different class names in the package.
func (p *PackageAggregate) DistinctClasses() int {
	return len(p.distinct)
}

// Analysis is the result of folding a set of records by package.
type Analysis struct {
	// Totals sums every record.
	Totals Counters
	// Packages are listed in order of first appearance.
	Packages []*PackageAggregate

	byName map[string]*PackageAggregate
}

// Aggregate folds the records into per-package and global totals.
func Aggregate(records []Record) *Analysis {
	a := &Analysis{byName: make(map[string]*PackageAggregate)}
	for _, r := range records {
		a.Totals = a.Totals.add(r.Counters())
		p, ok := a.byName[r.Package]
		if !ok {
			p = newPackageAggregate(r.Package)
			a.byName[r.Package] = p
			a.Packages = append(a.Packages, p)
		}
		p.add(r)
	}
	return a
}

// Package returns the aggregate of the named package.
func (a *Analysis) Package(name string) (*PackageAggregate, bool) {
	p, ok := a.byName[name]
	return p, ok
}

// WithPackage drops the records that have no package name.
func WithPackage(records []Record) []Record {
	result := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Package != "" {
			result = append(result, r)
		}
	}
	return result
}
