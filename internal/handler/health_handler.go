package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker probes the store.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Tables(ctx context.Context) []string
}

type HealthHandler struct {
	store HealthChecker
}

func NewHealthHandler(store HealthChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check godoc
// @Summary  Database connectivity and schema check
// @Tags     Health
// @Produce  json
// @Success  200 {object} map[string]any
// @Failure  503 {object} map[string]any
// @Router   /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().UTC().Format(time.RFC3339)

	if err := h.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message":   "Database connection failed",
			"error":     err.Error(),
			"timestamp": now,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Database connection successful",
		"tables":    h.store.Tables(ctx),
		"timestamp": now,
	})
}
