package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"analysis-web/logger"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AnalysisResult is the analysis payload returned by the backend for both
// POST /analyze and GET /search.
type AnalysisResult struct {
	ID         int       `json:"id"`
	Title      *string   `json:"title"`
	Summary    string    `json:"summary"`
	Topics     []string  `json:"topics"`
	Keywords   []string  `json:"keywords"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	CreatedAt  Timestamp `json:"created_at"`
}

// TitleText returns the title or "" when the backend sent none.
func (a AnalysisResult) TitleText() string {
	if a.Title == nil {
		return ""
	}
	return strings.TrimSpace(*a.Title)
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO form some
// backends emit; zone-less values are read as UTC. An unrecognised string
// leaves the time zero so one bad date does not fail a whole result list.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z0700",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	logger.Log.WithField("created_at", raw).Warn("unsupported time format, leaving created_at empty")
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// AnalysisRecord is the stored form of an analysis in the development
// backend.
type AnalysisRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	InputText  string    `json:"input_text" gorm:"type:text"`
	Summary    string    `json:"summary" gorm:"type:text"`
	Title      *string   `json:"title" gorm:"size:255"`
	Topics     []string  `json:"topics" gorm:"serializer:json"`
	Keywords   []string  `json:"keywords" gorm:"serializer:json"`
	Sentiment  string    `json:"sentiment" gorm:"size:16"`
	Confidence float64   `json:"confidence" gorm:"not null;default:0.5"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (AnalysisRecord) TableName() string {
	return "analysis"
}

// Result converts the stored record to its wire form.
func (r AnalysisRecord) Result() AnalysisResult {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return AnalysisResult{
		ID:         int(r.ID),
		Title:      r.Title,
		Summary:    r.Summary,
		Topics:     topics,
		Keywords:   keywords,
		Sentiment:  Sentiment(r.Sentiment),
		Confidence: r.Confidence,
		CreatedAt:  Timestamp{Time: r.CreatedAt},
	}
}
