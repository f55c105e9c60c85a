package http

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// BasicAuthMiddleware returns a Gin middleware that validates HTTP basic
// auth against the configured credentials. Both username and password are
// compared in constant time so a mismatch reveals nothing through timing.
func BasicAuthMiddleware(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !constantTimeEqual(user, username) || !constantTimeEqual(pass, password) {
			authFailureCount.Inc()
			c.Header("WWW-Authenticate", `Basic realm="ddns-server"`)
			Fail(c, 401, "Incorrect username or password")
			c.Abort()
			return
		}
		c.Next()
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// LoggingMiddleware logs each HTTP request with method, path, status, and latency.
// Health check requests are not logged to reduce noise.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		if path == "/health" {
			return
		}

		slog.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		)
	}
}
