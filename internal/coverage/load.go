package coverage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// Columns selects which CSV columns a row must carry to be kept.
type Columns int

const (
	// InstructionColumns requires INSTRUCTION_MISSED and INSTRUCTION_COVERED only.
	InstructionColumns Columns = iota
	// AllColumns requires the instruction, branch, line and method columns.
	AllColumns
)

// row mirrors the JaCoCo CSV header. Values stay strings so that one bad cell
// drops its row instead of failing the whole file.
type row struct {
	Group              string `csv:"GROUP"`
	Package            string `csv:"PACKAGE"`
	Class              string `csv:"CLASS"`
	InstructionMissed  string `csv:"INSTRUCTION_MISSED"`
	InstructionCovered string `csv:"INSTRUCTION_COVERED"`
	BranchMissed       string `csv:"BRANCH_MISSED"`
	BranchCovered      string `csv:"BRANCH_COVERED"`
	LineMissed         string `csv:"LINE_MISSED"`
	LineCovered        string `csv:"LINE_COVERED"`
	MethodMissed       string `csv:"METHOD_MISSED"`
	MethodCovered      string `csv:"METHOD_COVERED"`
}

// Dataset is the outcome of loading a CSV export.
type Dataset struct {
	Records []Record
	// Skipped counts the rows dropped because of missing or non-integer values.
	Skipped int
}

// LoadFile reads the JaCoCo CSV export at path.
func LoadFile(fs afero.Fs, logger *slog.Logger, path string, columns Columns) (*Dataset, error) {
	f, err := input.Open(fs, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	logger.Debug("loading coverage CSV", "path", path)
	ds, err := Load(logger, f, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ds, nil
}

// Load reads a JaCoCo CSV export. Rows whose required counters are missing or
// not integers are skipped. An empty export yields an empty dataset.
func Load(logger *slog.Logger, r io.Reader, columns Columns) (*Dataset, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		logger.Debug("coverage CSV is empty")
		return &Dataset{Records: []Record{}}, nil
	}
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []*row
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}

	ds := &Dataset{Records: make([]Record, 0, len(rows))}
	for i, raw := range rows {
		rec, err := raw.record(columns)
		if err != nil {
			// header is line 1
			logger.Debug("skipping row", "line", i+2, "class", raw.Class, "reason", err)
			ds.Skipped++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	logger.Debug("coverage CSV loaded", "records", len(ds.Records), "skipped", ds.Skipped)
	return ds, nil
}

func (r *row) record(columns Columns) (Record, error) {
	rec := Record{
		Package: r.Package,
		Class:   r.Class,
	}
	var err error
	if rec.Instruction, err = counter("INSTRUCTION", r.InstructionMissed, r.InstructionCovered); err != nil {
		return rec, err
	}
	optional := []struct {
		name            string
		missed, covered string
		dst             *Counter
	}{
		{"BRANCH", r.BranchMissed, r.BranchCovered, &rec.Branch},
		{"LINE", r.LineMissed, r.LineCovered, &rec.Line},
		{"METHOD", r.MethodMissed, r.MethodCovered, &rec.Method},
	}
	for _, o := range optional {
		c, err := counter(o.name, o.missed, o.covered)
		if err != nil {
			if columns == AllColumns {
				return rec, err
			}
			// only the instruction counters matter in this mode
			c = Counter{}
		}
		*o.dst = c
	}
	return rec, nil
}

func counter(name, missed, covered string) (Counter, error) {
	m, err := parseCount(name+"_MISSED", missed)
	if err != nil {
		return Counter{}, err
	}
	c, err := parseCount(name+"_COVERED", covered)
	if err != nil {
		return Counter{}, err
	}
	return Counter{Missed: m, Covered: c}, nil
}

func parseCount(column, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("missing %s", column)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative %s %d", column, n)
	}
	return n, nil
}
