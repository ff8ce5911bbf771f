package views

import (
	"analysis-web/models"
)

// Card is the display form of one analysis. Optional sections are empty
// when the analysis has nothing to show for them.
type Card struct {
	ID             int
	Title          string
	Summary        string
	Sentiment      string
	SentimentClass string
	Confidence     string
	Created        string
	Topics         []string
	Keywords       []string
}

func (c Card) HasTags() bool {
	return len(c.Topics) > 0 || len(c.Keywords) > 0
}

// BadgeClass maps a sentiment to its badge style; unknown categories share
// the neutral style.
func BadgeClass(s models.Sentiment) string {
	switch s {
	case models.SentimentPositive:
		return "badge-positive"
	case models.SentimentNegative:
		return "badge-negative"
	default:
		return "badge-neutral"
	}
}

func NewCard(a models.AnalysisResult, loc Locale) Card {
	return Card{
		ID:             a.ID,
		Title:          a.TitleText(),
		Summary:        a.Summary,
		Sentiment:      string(a.Sentiment),
		SentimentClass: BadgeClass(a.Sentiment),
		Confidence:     loc.FormatConfidence(a.Confidence),
		Created:        loc.FormatCreated(a.CreatedAt.Time),
		Topics:         tags(a.Topics),
		Keywords:       tags(a.Keywords),
	}
}

// tags copies values so a card never aliases the backend result.
func tags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

type AnalyzerModel struct {
	Text           string
	Busy           bool
	SubmitLabel    string
	SubmitDisabled bool
	Error          string
	Result         *Card
}

// RenderAnalyzer projects analyzer state into what the page shows.
func RenderAnalyzer(s AnalyzerState, loc Locale) AnalyzerModel {
	m := AnalyzerModel{
		Text:        s.Text,
		Busy:        s.Status == StatusLoading,
		SubmitLabel: "Analyze Text",
	}
	if m.Busy {
		m.SubmitLabel = "Analyzing..."
		m.SubmitDisabled = true
	}
	if s.Status == StatusError {
		m.Error = s.Error
	}
	if s.Status == StatusReady && s.Result != nil {
		card := NewCard(*s.Result, loc)
		m.Result = &card
	}
	return m
}

type SearchModel struct {
	Term        string
	Busy        bool
	SubmitLabel string
	Error       string
	Cards       []Card
	Empty       bool
}

// RenderSearch projects search state into what the page shows.
func RenderSearch(s SearchState, loc Locale) SearchModel {
	m := SearchModel{
		Term:        s.Term,
		Busy:        s.Status == StatusLoading,
		SubmitLabel: "Search",
	}
	if m.Busy {
		m.SubmitLabel = "Searching..."
		return m
	}
	if s.Status == StatusError {
		m.Error = s.Error
	}
	for _, r := range s.Results {
		m.Cards = append(m.Cards, NewCard(r, loc))
	}
	m.Empty = len(m.Cards) == 0
	return m
}
