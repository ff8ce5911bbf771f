package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-web/views"
)

func sampleCard() views.Card {
	return views.Card{
		ID:             4,
		Title:          "Quarterly update",
		Summary:        "Revenue grew.",
		Sentiment:      "positive",
		SentimentClass: "badge-positive",
		Confidence:     "87.3%",
		Created:        "3/1/2025, 3:04:05 PM",
		Topics:         []string{"finance", "growth"},
	}
}

func TestParseColorMode(t *testing.T) {
	mode, err := ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, mode)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestResolveColorsHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(ColorAuto))
	assert.True(t, ResolveColors(ColorAlways))
}

func TestPrinterCardSkipsEmptySections(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	card := sampleCard()
	card.Title = ""
	p.Card(card)

	s := out.String()
	assert.Contains(t, s, "Summary:    Revenue grew.")
	assert.Contains(t, s, "Topics:     finance, growth")
	assert.NotContains(t, s, "Keywords:")
	assert.Contains(t, s, "Sentiment:  [positive]")
	assert.Contains(t, s, "Confidence: 87.3%")
	assert.NotContains(t, s, "Quarterly update")
}

func TestPrinterAnalyzerError(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Analyzer(views.AnalyzerModel{Error: "BadInput: text too long"})

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "BadInput: text too long")
}

func TestPrinterSearchTable(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	require.NoError(t, p.Search(views.SearchModel{Cards: []views.Card{sampleCard()}}))

	s := out.String()
	assert.Contains(t, s, "Quarterly update")
	assert.Contains(t, s, "[positive]")
	assert.Contains(t, s, "87.3%")
	assert.Contains(t, s, "finance, growth")
}

func TestPrinterSearchEmpty(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	require.NoError(t, p.Search(views.SearchModel{Empty: true}))

	assert.Equal(t, "No analyses found.\n", out.String())
}
