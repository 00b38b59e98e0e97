// Package jacoco reads the report-level counters of a JaCoCo XML report.
package jacoco

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/coverage"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/spf13/afero"
)

// CounterTypes is the order in which counters are reported. Other types are ignored.
var CounterTypes = []string{"INSTRUCTION", "BRANCH", "LINE", "COMPLEXITY", "METHOD", "CLASS"}

// report only maps the counters that are direct children of the root element.
type report struct {
	Counters []counter `xml:"counter"`
}

type counter struct {
	Type    string `xml:"type,attr"`
	Missed  string `xml:"missed,attr"`
	Covered string `xml:"covered,attr"`
}

type Counter struct {
	Type    string
	Missed  int
	Covered int
}

func (c Counter) Total() int {
	return c.Missed + c.Covered
}

func (c Counter) Pct() float64 {
	return coverage.Percentage(c.Covered, c.Missed)
}

// CounterTable maps a counter type to its values. When a type appears more
// than once, the last occurrence wins.
type CounterTable map[string]Counter

// Rows returns the known counters present in the table, in CounterTypes order.
func (t CounterTable) Rows() []Counter {
	rows := make([]Counter, 0, len(CounterTypes))
	for _, typ := range CounterTypes {
		if c, ok := t[typ]; ok {
			rows = append(rows, c)
		}
	}
	return rows
}

// ParseFile reads the JaCoCo XML report at path.
func ParseFile(fs afero.Fs, logger *slog.Logger, path string) (CounterTable, error) {
	f, err := input.Open(fs, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("jacoco counters loaded", "path", path, "counters", len(table))
	return table, nil
}

// Parse reads the report-level counters of a JaCoCo XML report.
func Parse(r io.Reader) (CounterTable, error) {
	var rep report
	if err := xml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("error decoding XML: %w", err)
	}
	table := make(CounterTable, len(rep.Counters))
	for _, c := range rep.Counters {
		missed, err := strconv.Atoi(c.Missed)
		if err != nil {
			return nil, fmt.Errorf("invalid missed value %q for counter %s", c.Missed, c.Type)
		}
		covered, err := strconv.Atoi(c.Covered)
		if err != nil {
			return nil, fmt.Errorf("invalid covered value %q for counter %s", c.Covered, c.Type)
		}
		table[c.Type] = Counter{Type: c.Type, Missed: missed, Covered: covered}
	}
	return table, nil
}
