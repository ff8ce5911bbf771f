package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"analysis-web/apiclient"
	"analysis-web/models"
)

// AnalyzerState is a snapshot of the analyzer view. Result is set only when
// Status is StatusReady, Error only when Status is StatusError.
type AnalyzerState struct {
	Text   string
	Status Status
	Result *models.AnalysisResult
	Error  string
}

// Analyzer is the text analysis view. A late response overwrites whatever
// state the view is in when it arrives.
type Analyzer struct {
	api AnalyzeAPI
	log logrus.FieldLogger

	mu       sync.Mutex
	state    AnalyzerState
	onChange func(AnalyzerState)
}

func NewAnalyzer(api AnalyzeAPI, log logrus.FieldLogger) *Analyzer {
	return &Analyzer{api: api, log: log}
}

// OnChange registers fn to receive every new state.
func (a *Analyzer) OnChange(fn func(AnalyzerState)) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

func (a *Analyzer) Snapshot() AnalyzerState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Analyzer) SetText(text string) {
	a.update(func(s *AnalyzerState) { s.Text = text })
}

// Submit analyzes the current text. Blank text is rejected without calling
// the backend.
func (a *Analyzer) Submit(ctx context.Context) AnalyzerState {
	text := a.Snapshot().Text

	if strings.TrimSpace(text) == "" {
		err := &ValidationError{Message: msgEmptyText}
		a.log.WithField("view", "analyzer").Warn(err.Error())
		return a.update(func(s *AnalyzerState) {
			s.Status = StatusError
			s.Result = nil
			s.Error = err.Message
		})
	}

	a.update(func(s *AnalyzerState) {
		s.Status = StatusLoading
		s.Result = nil
		s.Error = ""
	})

	result, err := a.api.Analyze(ctx, text)
	if err != nil {
		msg := AnalyzeErrorMessage(err)
		a.log.WithFields(logrus.Fields{"view": "analyzer", "error": err.Error()}).Error("analysis failed")
		return a.update(func(s *AnalyzerState) {
			s.Status = StatusError
			s.Error = msg
		})
	}

	return a.update(func(s *AnalyzerState) {
		s.Status = StatusReady
		s.Result = result
	})
}

// Clear resets the view to idle from any state.
func (a *Analyzer) Clear() AnalyzerState {
	return a.update(func(s *AnalyzerState) {
		*s = AnalyzerState{}
	})
}

func (a *Analyzer) update(fn func(*AnalyzerState)) AnalyzerState {
	a.mu.Lock()
	fn(&a.state)
	snapshot := a.state
	notify := a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return snapshot
}

// AnalyzeErrorMessage turns an analyze failure into the message shown to
// the user. A structured {"detail": {"error", "detail"}} payload becomes
// "error: detail"; a string detail is shown as is.
func AnalyzeErrorMessage(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	var respErr *apiclient.ResponseError
	if errors.As(err, &respErr) {
		switch detail := respErr.Detail().(type) {
		case map[string]any:
			errText, _ := detail["error"].(string)
			detailText, _ := detail["detail"].(string)
			if errText != "" && detailText != "" {
				return fmt.Sprintf("%s: %s", errText, detailText)
			}
		case string:
			if detail != "" {
				return detail
			}
		}
	}

	return msgAnalyzeFailed
}
