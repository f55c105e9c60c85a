package http

import (
	"github.com/foorensic/ddns-server/types"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response with the given result message.
func OK(c *gin.Context, message string) {
	c.JSON(200, types.UpdateResult{Success: true, Message: message})
}

// Fail sends an error response with the given HTTP status and message.
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, types.UpdateResult{Success: false, Message: message})
}
