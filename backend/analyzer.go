package backend

import (
	"context"
	"regexp"
	"strings"

	"analysis-web/models"
)

// Analysis is what an Analyzer derives from a text; keywords are extracted
// separately.
type Analysis struct {
	Summary    string
	Title      *string
	Topics     []string
	Sentiment  models.Sentiment
	Confidence float64
}

type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}

// HeuristicAnalyzer works without any external service: the opening
// sentences become the summary and the most frequent words the topics.
type HeuristicAnalyzer struct{}

const (
	heuristicConfidence = 0.5
	maxTitleLen         = 80
	maxSummaryLen       = 300
)

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

var (
	positiveWords = wordSet(`good great excellent positive gain gains grew growth happy improve improved
		improvement success successful strong win wins benefit profit profits love best up rise record`)
	negativeWords = wordSet(`bad poor negative loss losses fell decline declined weak fail failed failure
		risk crisis worst down drop sad hate problem problems lawsuit cut cuts`)
)

func wordSet(words string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

func (HeuristicAnalyzer) Analyze(_ context.Context, text string) (Analysis, error) {
	body := strings.TrimSpace(text)

	var title *string
	if first, rest, found := strings.Cut(body, "\n"); found {
		first = strings.TrimSpace(first)
		if first != "" && len(first) <= maxTitleLen && !strings.ContainsAny(first[len(first)-1:], ".!?") {
			title = &first
			body = strings.TrimSpace(rest)
		}
	}

	return Analysis{
		Summary:    summarize(body),
		Title:      title,
		Topics:     ExtractKeywords(body, 3),
		Sentiment:  lexiconSentiment(body),
		Confidence: heuristicConfidence,
	}, nil
}

func summarize(text string) string {
	bounds := sentenceEnd.FindAllStringIndex(text, 2)
	summary := text
	if len(bounds) > 0 {
		summary = text[:bounds[len(bounds)-1][1]]
	}
	summary = strings.Join(strings.Fields(summary), " ")
	if runes := []rune(summary); len(runes) > maxSummaryLen {
		summary = strings.TrimSpace(string(runes[:maxSummaryLen])) + "..."
	}
	return summary
}

func lexiconSentiment(text string) models.Sentiment {
	var score int
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := positiveWords[w]; ok {
			score++
		}
		if _, ok := negativeWords[w]; ok {
			score--
		}
	}
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// normalizeSentiment maps anything outside the known categories to neutral.
func normalizeSentiment(s string) models.Sentiment {
	switch v := models.Sentiment(strings.ToLower(strings.TrimSpace(s))); v {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		return v
	default:
		return models.SentimentNeutral
	}
}
