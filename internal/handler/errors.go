package handler

import (
	"net/http"
	"time"

	"kanboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error", "code"} with the status its code maps to.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	code := apperr.CodeOf(err)
	c.JSON(code.HTTPStatus(), gin.H{
		"error": apperr.MessageOf(err),
		"code":  code,
	})
}

// invalidRequest answers a body or query that could not be bound.
func invalidRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": message,
		"code":  apperr.CodeValidationFailure,
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
