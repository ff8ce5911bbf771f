package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"analysis-web/views"
)

// SearchPage shows the search view. A first visit without a topic performs
// the initial unfiltered search; a submitted form searches for its topic.
func (s *Server) SearchPage(c *gin.Context) {
	search := views.NewSearch(s.api, s.log)

	var state views.SearchState
	if topic, ok := c.GetQuery("topic"); ok {
		search.SetTerm(topic)
		state = search.SubmitSearch(c.Request.Context())
	} else {
		state = search.Mount(c.Request.Context())
	}

	s.renderSearch(c, state)
}

// ClearSearch empties the term and lists every analysis again.
func (s *Server) ClearSearch(c *gin.Context) {
	search := views.NewSearch(s.api, s.log)
	s.renderSearch(c, search.ClearSearch(c.Request.Context()))
}

func (s *Server) renderSearch(c *gin.Context, state views.SearchState) {
	c.HTML(http.StatusOK, "search.html", pageData{
		Title:     "Search",
		Active:    "search",
		RequestID: c.GetString(requestIDKey),
		View:      views.RenderSearch(state, s.locale(c)),
	})
}
