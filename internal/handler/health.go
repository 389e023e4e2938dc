package handler

import (
	"net/http"

	"github.com/insightdeck/insightdeck/internal/bridge"
	"github.com/insightdeck/insightdeck/internal/models"
)

const version = "1.0.0"

// HealthHandler reports server status plus the bridge's tri-state health.
type HealthHandler struct {
	bridge *bridge.Client
}

func NewHealthHandler(br *bridge.Client) *HealthHandler {
	return &HealthHandler{bridge: br}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"
	statusCode := http.StatusOK

	hs := h.bridge.CheckHealth(r.Context())
	switch hs.State {
	case bridge.StateHealthy:
		checks["bridge"] = "ok"
	case bridge.StateDegraded:
		checks["bridge"] = "degraded: " + hs.Detail
		overallStatus = "degraded"
		statusCode = http.StatusServiceUnavailable
	default:
		checks["bridge"] = "unreachable: " + hs.Detail
		overallStatus = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
