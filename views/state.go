// Package views holds the state containers behind the analyzer and search
// screens and the projection of that state into render models. The same
// views back the web pages and the terminal commands.
package views

import (
	"context"

	"analysis-web/models"
)

// Status is the tag of a view's state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// AnalyzeAPI is the backend operation the analyzer view depends on.
type AnalyzeAPI interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

// SearchAPI is the backend operation the search view depends on.
type SearchAPI interface {
	Search(ctx context.Context, term string) ([]models.AnalysisResult, error)
}

// ValidationError is raised locally, before any backend call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgEmptyText     = "Please enter some text to analyze"
	msgAnalyzeFailed = "Failed to analyze text. Please try again."
	msgSearchFailed  = "Failed to search analyses. Please try again."
)
