package handler

import (
	"net/http"

	"github.com/insightdeck/insightdeck/internal/dashboard"
	"github.com/insightdeck/insightdeck/internal/models"
)

// DashboardHandler serves the aggregate dashboard.
type DashboardHandler struct {
	aggregator *dashboard.Aggregator
}

func NewDashboardHandler(aggregator *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator}
}

// DashboardResponse wraps the stats with a flag telling the UI whether this
// call rebuilt them or the cool-down served the previous set.
type DashboardResponse struct {
	models.DashboardStats
	Refreshed bool `json:"refreshed"`
}

// Dashboard handles GET /api/v1/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, refreshed := h.aggregator.Refresh(r.Context())
	models.WriteJSON(w, http.StatusOK, DashboardResponse{
		DashboardStats: *stats,
		Refreshed:      refreshed,
	})
}
