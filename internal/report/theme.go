// Package report renders the computed summaries as console tables or Markdown.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ruleWidth is the width of the console tables.
const ruleWidth = 80

// Theme holds the console styles. Styles are bound to the output writer, so
// colours are only emitted when it is a terminal.
type Theme struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Rule    lipgloss.Style
	Low     lipgloss.Style
	Warning lipgloss.Style
	Good    lipgloss.Style
	Muted   lipgloss.Style
}

func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Title:   r.NewStyle().Bold(true),
		Header:  r.NewStyle().Bold(true),
		Rule:    r.NewStyle().Foreground(lipgloss.Color("242")),
		Low:     r.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Good:    r.NewStyle().Foreground(lipgloss.Color("34")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// Level picks the style of a coverage percentage.
func (t Theme) Level(pct, low, warning float64) lipgloss.Style {
	switch {
	case pct < low:
		return t.Low
	case pct < warning:
		return t.Warning
	default:
		return t.Good
	}
}

func (t Theme) rule() string {
	return t.Rule.Render(strings.Repeat("-", ruleWidth))
}

// fit pads s to width columns, truncating it with "..." when it does not fit
// in width-3 columns.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width-3, "..."), width)
}
