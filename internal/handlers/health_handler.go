package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the API health check.
type HealthHandler struct {
	databaseStatus func() string
}

// NewHealthHandler creates a HealthHandler. databaseStatus reports which
// storage backend is active (real store vs in-memory stand-in).
func NewHealthHandler(databaseStatus func() string) *HealthHandler {
	return &HealthHandler{databaseStatus: databaseStatus}
}

// Status reports server health, a timestamp, and the storage backend.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"message":        "Municipality Budget API Server is running",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"databaseStatus": h.databaseStatus(),
	})
}
