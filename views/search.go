package views

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"analysis-web/models"
)

// SearchState is a snapshot of the search view. Results from the last
// successful search are kept when a later search fails.
type SearchState struct {
	Term    string
	Status  Status
	Results []models.AnalysisResult
	Error   string
}

type Search struct {
	api SearchAPI
	log logrus.FieldLogger

	mu       sync.Mutex
	state    SearchState
	mounted  bool
	onChange func(SearchState)
}

func NewSearch(api SearchAPI, log logrus.FieldLogger) *Search {
	return &Search{api: api, log: log}
}

func (s *Search) OnChange(fn func(SearchState)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Search) Snapshot() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mount runs the initial unfiltered search the first time the view is
// shown. Later calls return the current state.
func (s *Search) Mount(ctx context.Context) SearchState {
	s.mu.Lock()
	if s.mounted {
		snapshot := s.state
		s.mu.Unlock()
		return snapshot
	}
	s.mounted = true
	s.mu.Unlock()

	return s.run(ctx, "")
}

func (s *Search) SetTerm(term string) {
	s.update(func(st *SearchState) { st.Term = term })
}

// SubmitSearch always queries the backend; a blank term lists everything.
func (s *Search) SubmitSearch(ctx context.Context) SearchState {
	s.mu.Lock()
	s.mounted = true
	term := s.state.Term
	s.mu.Unlock()

	return s.run(ctx, term)
}

// ClearSearch empties the term and fetches the unfiltered list again.
func (s *Search) ClearSearch(ctx context.Context) SearchState {
	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()

	s.update(func(st *SearchState) { st.Term = "" })
	return s.run(ctx, "")
}

func (s *Search) run(ctx context.Context, term string) SearchState {
	s.update(func(st *SearchState) {
		st.Status = StatusLoading
		st.Error = ""
	})

	results, err := s.api.Search(ctx, term)
	if err != nil {
		s.log.WithFields(logrus.Fields{"view": "search", "term": term, "error": err.Error()}).Error("search failed")
		return s.update(func(st *SearchState) {
			st.Status = StatusError
			st.Error = msgSearchFailed
		})
	}

	return s.update(func(st *SearchState) {
		st.Status = StatusReady
		st.Results = results
	})
}

func (s *Search) update(fn func(*SearchState)) SearchState {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return snapshot
}
