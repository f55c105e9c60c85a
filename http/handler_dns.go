package http

import (
	"github.com/foorensic/ddns-server/nsupdate"

	"github.com/gin-gonic/gin"
)

// UpdateHandler handles the record mutation endpoint.
type UpdateHandler struct {
	service *nsupdate.Service
}

// NewUpdateHandler creates an UpdateHandler backed by the given service.
func NewUpdateHandler(svc *nsupdate.Service) *UpdateHandler {
	return &UpdateHandler{service: svc}
}

// UpdateRecord handles GET /api/v1/:type/:method. The request is
// validated into an UpdateRequest, rendered into one zone update batch,
// and submitted to the update tool. Validation failures are client
// errors with a specific message; tool failures are server errors with
// a generic one.
func (h *UpdateHandler) UpdateRecord(c *gin.Context) {
	recordType := c.Param("type")
	method := c.Param("method")

	req, err := nsupdate.ParseRequest(recordType, method, c.QueryArray("host"), c.Query("value"), c.ClientIP())
	if err != nil {
		invalidRequestCount.Inc()
		Fail(c, 400, err.Error())
		return
	}

	// Label values come from the validated request, never raw input.
	result, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		updateCount.WithLabelValues(string(req.Type), string(req.Method), "error").Inc()
		c.JSON(500, result)
		return
	}

	updateCount.WithLabelValues(string(req.Type), string(req.Method), "success").Inc()
	c.JSON(200, result)
}
