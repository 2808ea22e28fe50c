package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/domain/shared/fault"
)

// writeError maps the fault taxonomy onto HTTP statuses. Infrastructure
// details stay out of the response body.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	switch fault.KindOf(err) {
	case fault.NotFound:
		status = http.StatusNotFound
	case fault.Permission:
		status = http.StatusForbidden
	case fault.Validation:
		status = http.StatusBadRequest
	case fault.Availability, fault.State:
		status = http.StatusConflict
	case fault.Infrastructure:
		message = "internal error"
	default:
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message})
}

// actorID resolves the caller identity forwarded by the API gateway.
func actorID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return id, true
}
