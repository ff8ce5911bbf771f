package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"analysis-web/views"
)

// AnalyzerPage renders the idle analyzer.
func (s *Server) AnalyzerPage(c *gin.Context) {
	analyzer := views.NewAnalyzer(s.api, s.log)
	s.renderAnalyzer(c, analyzer.Snapshot())
}

// SubmitAnalyzer handles both form buttons: "analyze" submits the text,
// "clear" resets the view without contacting the backend.
func (s *Server) SubmitAnalyzer(c *gin.Context) {
	analyzer := views.NewAnalyzer(s.api, s.log)
	analyzer.SetText(c.PostForm("text"))

	var state views.AnalyzerState
	switch c.DefaultPostForm("action", "analyze") {
	case "clear":
		state = analyzer.Clear()
	default:
		state = analyzer.Submit(c.Request.Context())
	}

	s.renderAnalyzer(c, state)
}

func (s *Server) renderAnalyzer(c *gin.Context, state views.AnalyzerState) {
	c.HTML(http.StatusOK, "analyzer.html", pageData{
		Title:     "Analyze",
		Active:    "analyze",
		RequestID: c.GetString(requestIDKey),
		View:      views.RenderAnalyzer(state, s.locale(c)),
	})
}
