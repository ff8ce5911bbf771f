package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"analysis-web/apiclient"
	"analysis-web/metrics"
)

const requestIDKey = "request_id"

// requestID honours an inbound X-Request-ID or mints one, echoes it on the
// response and puts it on the request context for backend calls.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(apiclient.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(apiclient.RequestIDHeader, id)
		c.Request = c.Request.WithContext(apiclient.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString(requestIDKey),
		}).Info("request")
	}
}

func pageMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordPage(route, c.Request.Method)
	}
}
