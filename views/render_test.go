package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"analysis-web/models"
)

func TestFormatConfidence(t *testing.T) {
	loc := DefaultLocale()

	assert.Equal(t, "87.3%", loc.FormatConfidence(0.873))
	assert.Equal(t, "100.0%", loc.FormatConfidence(1))
	assert.Equal(t, "0.0%", loc.FormatConfidence(0))
	assert.Equal(t, "90.0%", loc.FormatConfidence(0.9))
}

func TestNewLocaleMatchesAcceptLanguage(t *testing.T) {
	assert.Equal(t, language.German, NewLocale("de-DE,de;q=0.9,en;q=0.8").Tag)
	assert.Equal(t, language.BritishEnglish, NewLocale("en-GB").Tag)
	assert.Equal(t, language.AmericanEnglish, NewLocale("").Tag)
	assert.Equal(t, language.AmericanEnglish, NewLocale("not a header;;").Tag)
}

func TestFormatCreatedPerLocale(t *testing.T) {
	ts := time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC)

	us := DefaultLocale()
	us.Location = time.UTC
	assert.Equal(t, "3/1/2025, 3:04:05 PM", us.FormatCreated(ts))

	de := NewLocale("de")
	de.Location = time.UTC
	assert.Equal(t, "1.3.2025, 15:04:05", de.FormatCreated(ts))

	assert.Empty(t, us.FormatCreated(time.Time{}))
}

func TestNewCardOptionalSections(t *testing.T) {
	blank := "  "
	card := NewCard(models.AnalysisResult{
		Title:     &blank,
		Summary:   "Just a summary.",
		Topics:    []string{},
		Keywords:  nil,
		Sentiment: "mixed",
	}, DefaultLocale())

	assert.Empty(t, card.Title)
	assert.Equal(t, "Just a summary.", card.Summary)
	assert.False(t, card.HasTags())
	assert.Equal(t, "badge-neutral", card.SentimentClass)
	assert.Equal(t, "mixed", card.Sentiment)
}

func TestNewCardKeepsTextVerbatim(t *testing.T) {
	title := "Using <div> and <span>"
	card := NewCard(models.AnalysisResult{
		Title:     &title,
		Summary:   "Compare a<b and c>d in the proof.",
		Topics:    []string{"<html>", "markets"},
		Keywords:  []string{"a & b"},
		Sentiment: models.SentimentNegative,
	}, DefaultLocale())

	assert.Equal(t, "Using <div> and <span>", card.Title)
	assert.Equal(t, "Compare a<b and c>d in the proof.", card.Summary)
	assert.Equal(t, []string{"<html>", "markets"}, card.Topics)
	assert.Equal(t, []string{"a & b"}, card.Keywords)
	assert.Equal(t, "badge-negative", card.SentimentClass)
}
