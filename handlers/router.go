package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"analysis-web/views"
)

//go:embed templates/*.html
var templateFS embed.FS

// API is the backend surface the pages need.
type API interface {
	views.AnalyzeAPI
	views.SearchAPI
}

// Server renders the analyzer and search pages.
type Server struct {
	api  API
	log  logrus.FieldLogger
	zone *time.Location
}

func NewServer(api API, log logrus.FieldLogger) *Server {
	return &Server{api: api, log: log, zone: time.Local}
}

// pageData is what every page template receives; View is the page's
// render model.
type pageData struct {
	Title     string
	Active    string
	RequestID string
	View      any
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{"dict": dict}).ParseFS(templateFS, "templates/*.html")
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Router wires the pages, health and metrics endpoints.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log), pageMetrics())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.AnalyzerPage)
	r.POST("/", s.SubmitAnalyzer)

	r.GET("/search", s.SearchPage)
	r.POST("/search/clear", s.ClearSearch)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}

func (s *Server) locale(c *gin.Context) views.Locale {
	loc := views.NewLocale(c.GetHeader("Accept-Language"))
	loc.Location = s.zone
	return loc
}
