package coverage

// Metric names a JaCoCo counter aggregated by the analyzer.
type Metric string

const (
	Instruction Metric = "instruction"
	Branch      Metric = "branch"
	Line        Metric = "line"
	Method      Metric = "method"
	Class       Metric = "class"
)

// Metrics lists the aggregated counters in report order.
var Metrics = []Metric{Instruction, Branch, Line, Method, Class}

// Percentage returns covered / (covered + missed) * 100, or 0 when both are 0.
func Percentage(covered, missed int) float64 {
	total := covered + missed
	if total <= 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}

type Counter struct {
	Missed  int
	Covered int
}

func (c Counter) Total() int {
	return c.Missed + c.Covered
}

func (c Counter) Pct() float64 {
	return Percentage(c.Covered, c.Missed)
}

func (c Counter) add(o Counter) Counter {
	return Counter{Missed: c.Missed + o.Missed, Covered: c.Covered + o.Covered}
}

// Counters holds one Counter per Metric.
type Counters struct {
	Instruction Counter
	Branch      Counter
	Line        Counter
	Method      Counter
	Class       Counter
}

func (c Counters) Get(m Metric) Counter {
	switch m {
	case Instruction:
		return c.Instruction
	case Branch:
		return c.Branch
	case Line:
		return c.Line
	case Method:
		return c.Method
	case Class:
		return c.Class
	default:
		return Counter{}
	}
}

func (c Counters) add(o Counters) Counters {
	return Counters{
		Instruction: c.Instruction.add(o.Instruction),
		Branch:      c.Branch.add(o.Branch),
		Line:        c.Line.add(o.Line),
		Method:      c.Method.add(o.Method),
		Class:       c.Class.add(o.Class),
	}
}

// Record is one class row of a JaCoCo CSV export.
type Record struct {
	Package     string
	Class       string
	Instruction Counter
	Branch      Counter
	Line        Counter
	Method      Counter
}

// QualifiedName returns package.Class.
func (r Record) QualifiedName() string {
	if r.Package == "" {
		return r.Class
	}
	return r.Package + "." + r.Class
}

// Counters returns the record counters. The class counter counts the row as one
// covered class when any of its instruction, branch, line or method counters has
// covered items, otherwise as one missed class.
func (r Record) Counters() Counters {
	class := Counter{Missed: 1}
	if r.Instruction.Covered+r.Branch.Covered+r.Line.Covered+r.Method.Covered > 0 {
		class = Counter{Covered: 1}
	}
	return Counters{
		Instruction: r.Instruction,
		Branch:      r.Branch,
		Line:        r.Line,
		Method:      r.Method,
		Class:       class,
	}
}
