package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"homequote.backend/pkg/logger"
)

// Probe endpoints are scraped constantly and would drown the request log.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

var logRequest = logger.LogRequest

// LoggerMiddleware logs HTTP requests using the structured logger
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, quiet := quietPaths[path]; quiet && c.Writer.Status() < 400 {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		// request id and partner id are read from c.Request.Context()
		logRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP(), RequestHost(c))
	}
}
