// Package depcheck summarizes OWASP Dependency-Check XML reports and runs the scanner.
package depcheck

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/spf13/afero"
)

// Unknown replaces a missing vulnerability severity or name.
const Unknown = "UNKNOWN"

// dependency matches a <dependency> element in any namespace. Vulnerabilities
// may be direct children or wrapped in <vulnerabilities>.
type dependency struct {
	FileName        string          `xml:"fileName"`
	FilePath        string          `xml:"filePath"`
	Vulnerabilities []vulnerability `xml:"vulnerability"`
	Wrapped         []vulnerability `xml:"vulnerabilities>vulnerability"`
}

type vulnerability struct {
	Name     string `xml:"name"`
	CVE      string `xml:"cve"`
	Severity string `xml:"severity"`
}

type Vulnerability struct {
	Name     string
	Severity string
}

// Finding lists the vulnerabilities of one dependency.
type Finding struct {
	Dependency      string
	Vulnerabilities []Vulnerability
}

type Summary struct {
	Dependencies int
	Vulnerable   int
	// Severities lists the severities in order of first appearance.
	Severities       []string
	CountsBySeverity map[string]int
	Findings         []Finding
}

func newSummary() *Summary {
	return &Summary{CountsBySeverity: make(map[string]int)}
}

// Vulnerabilities returns the total number of vulnerabilities.
func (s *Summary) Vulnerabilities() int {
	n := 0
	for _, c := range s.CountsBySeverity {
		n += c
	}
	return n
}

func (s *Summary) add(d dependency) {
	s.Dependencies++
	vulns := append(d.Vulnerabilities, d.Wrapped...)
	if len(vulns) == 0 {
		return
	}
	s.Vulnerable++
	f := Finding{Dependency: d.name(s.Dependencies)}
	for _, v := range vulns {
		severity := firstNonBlank(v.Severity, Unknown)
		if _, seen := s.CountsBySeverity[severity]; !seen {
			s.Severities = append(s.Severities, severity)
		}
		s.CountsBySeverity[severity]++
		f.Vulnerabilities = append(f.Vulnerabilities, Vulnerability{
			Name:     firstNonBlank(v.Name, v.CVE, Unknown),
			Severity: severity,
		})
	}
	s.Findings = append(s.Findings, f)
}

func (d dependency) name(position int) string {
	return firstNonBlank(d.FileName, d.FilePath, fmt.Sprintf("dependency #%d", position))
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ParseFile summarizes the Dependency-Check XML report at path.
func ParseFile(fs afero.Fs, logger *slog.Logger, path string) (*Summary, error) {
	f, err := input.Open(fs, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("dependency-check report loaded", "path", path, "dependencies", s.Dependencies, "vulnerable", s.Vulnerable)
	return s, nil
}

// Parse counts every <dependency> element of the report, at any depth, and
// tallies its vulnerabilities by severity.
func Parse(r io.Reader) (*Summary, error) {
	s := newSummary()
	decoder := xml.NewDecoder(r)
	root := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root = true
		if start.Name.Local != "dependency" {
			continue
		}
		var d dependency
		if err := decoder.DecodeElement(&d, &start); err != nil {
			return nil, fmt.Errorf("error decoding dependency: %w", err)
		}
		s.add(d)
	}
	if !root {
		return nil, errors.New("error decoding XML: no root element")
	}
	return s, nil
}
