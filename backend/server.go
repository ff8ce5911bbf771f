// Package backend is a development implementation of the analysis backend
// HTTP API (POST /analyze, GET /search) so the web client can run end to
// end without the production service.
package backend

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"analysis-web/models"
)

type Server struct {
	store    *Store
	analyzer Analyzer
	log      logrus.FieldLogger
}

func NewServer(store *Store, analyzer Analyzer, log logrus.FieldLogger) *Server {
	return &Server{store: store, analyzer: analyzer, log: log}
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), withCORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LLM Extractor API"})
	})
	r.POST("/analyze", s.Analyze)
	r.GET("/search", s.Search)
	return r
}

// Analyze handles POST /analyze.
func (s *Server) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Input text cannot be empty"})
		return
	}

	keywords := ExtractKeywords(text, 3)

	analysis, err := s.analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": c.GetHeader("X-Request-ID"),
			"error":      err.Error(),
		}).Error("analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": gin.H{
			"error":     "LLM Analysis Failed",
			"detail":    err.Error(),
			"timestamp": time.Now().Format(time.RFC3339),
		}})
		return
	}

	record := models.AnalysisRecord{
		InputText:  text,
		Summary:    analysis.Summary,
		Title:      analysis.Title,
		Topics:     analysis.Topics,
		Sentiment:  string(analysis.Sentiment),
		Keywords:   keywords,
		Confidence: analysis.Confidence,
	}
	if err := s.store.Create(c.Request.Context(), &record); err != nil {
		s.log.WithError(err).Error("failed to save analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save analysis"})
		return
	}

	c.JSON(http.StatusOK, record.Result())
}

// Search handles GET /search.
func (s *Server) Search(c *gin.Context) {
	records, err := s.store.Search(c.Request.Context(), c.Query("topic"))
	if err != nil {
		s.log.WithError(err).Error("failed to search analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}

	results := make([]models.AnalysisResult, 0, len(records))
	for _, r := range records {
		results = append(results, r.Result())
	}
	c.JSON(http.StatusOK, results)
}

func withCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
