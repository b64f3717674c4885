package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	enricherEnabled bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(enricherEnabled bool) *HealthHandler {
	return &HealthHandler{enricherEnabled: enricherEnabled}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready even without an
// enrichment provider; the flag just tells operators which mode is running.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"enricher_enabled": h.enricherEnabled,
	})
}
