// Package terminal renders the analyzer and search views to a terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"analysis-web/views"
)

// ColorMode represents color output mode
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to colorize, honouring NO_COLOR and dumb
// terminals in auto mode.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors}
}

// Busy prints the in-flight label of a view, e.g. "Analyzing...".
func (p *Printer) Busy(label string) {
	p.paint(p.err, color.New(color.Faint), label)
}

func (p *Printer) Error(msg string) {
	p.paint(p.err, color.New(color.FgRed), "✗ "+msg)
}

func (p *Printer) Empty(msg string) {
	p.paint(p.out, color.New(color.Faint), msg)
}

// Badge renders a sentiment the way the web badge does: green, red or
// neutral.
func (p *Printer) Badge(card views.Card) string {
	label := "[" + card.Sentiment + "]"
	if !p.useColors {
		return label
	}
	switch card.SentimentClass {
	case "badge-positive":
		return color.GreenString(label)
	case "badge-negative":
		return color.RedString(label)
	default:
		return color.WhiteString(label)
	}
}

// Card prints one analysis with its optional sections.
func (p *Printer) Card(card views.Card) {
	if card.Title != "" {
		p.paint(p.out, color.New(color.Bold), card.Title)
	}
	fmt.Fprintf(p.out, "Summary:    %s\n", card.Summary)
	if len(card.Topics) > 0 {
		fmt.Fprintf(p.out, "Topics:     %s\n", strings.Join(card.Topics, ", "))
	}
	if len(card.Keywords) > 0 {
		fmt.Fprintf(p.out, "Keywords:   %s\n", strings.Join(card.Keywords, ", "))
	}
	fmt.Fprintf(p.out, "Sentiment:  %s\n", p.Badge(card))
	fmt.Fprintf(p.out, "Confidence: %s\n", card.Confidence)
	if card.Created != "" {
		fmt.Fprintf(p.out, "Created:    %s\n", card.Created)
	}
}

// Analyzer prints a settled analyzer view.
func (p *Printer) Analyzer(m views.AnalyzerModel) {
	if m.Error != "" {
		p.Error(m.Error)
		return
	}
	if m.Result != nil {
		p.Card(*m.Result)
	}
}

// Search prints a settled search view as a table.
func (p *Printer) Search(m views.SearchModel) error {
	if m.Error != "" {
		p.Error(m.Error)
	}
	if m.Empty {
		p.Empty("No analyses found.")
		return nil
	}

	table := NewTable(p.out, []string{"ID", "Title", "Sentiment", "Confidence", "Created", "Topics", "Keywords"})
	for _, card := range m.Cards {
		table.AddRow([]string{
			fmt.Sprint(card.ID),
			card.Title,
			p.Badge(card),
			card.Confidence,
			card.Created,
			strings.Join(card.Topics, ", "),
			strings.Join(card.Keywords, ", "),
		})
	}
	return table.Render()
}

func (p *Printer) paint(w io.Writer, c *color.Color, text string) {
	if p.useColors {
		c.Fprintln(w, text)
		return
	}
	fmt.Fprintln(w, text)
}
