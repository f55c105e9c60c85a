package http

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// StatusHandler handles GET /status and returns system runtime information.
func StatusHandler(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(200, gin.H{
		"uptime":      time.Since(startTime).String(),
		"goroutines":  runtime.NumGoroutine(),
		"go_version":  runtime.Version(),
		"alloc_bytes": mem.Alloc,
	})
}

// IPHandler handles GET /api/v1/ip and returns the caller's observed
// address as plain text. No auth, no mutation.
func IPHandler(c *gin.Context) {
	c.String(200, c.ClientIP())
}
