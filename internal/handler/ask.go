package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/pipeline"
)

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskHandler drives one pipeline run per submitted question.
type AskHandler struct {
	orchestrator *pipeline.Orchestrator
}

func NewAskHandler(orchestrator *pipeline.Orchestrator) *AskHandler {
	return &AskHandler{orchestrator: orchestrator}
}

// Ask handles POST /api/v1/ask. Pipeline failures surface one actionable
// message: analyst-side failures never leak as stack traces, and a bridge
// failure never appears here at all because empty data is a valid result.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		models.WriteError(w, http.StatusServiceUnavailable, "the analyst is not configured; set ANTHROPIC_API_KEY")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.orchestrator.Run(r.Context(), req.Question)
	if err != nil {
		var planErr *models.PlanningError
		var synthErr *models.SynthesisError
		switch {
		case errors.Is(err, models.ErrEmptyQuestion):
			models.WriteError(w, http.StatusBadRequest, "question is required")
		case errors.As(err, &planErr):
			models.WriteError(w, http.StatusBadGateway, "could not reach the analyst to plan this question; try again shortly")
		case errors.As(err, &synthErr):
			models.WriteError(w, http.StatusBadGateway, "could not reach the analyst to summarize the results; try again shortly")
		default:
			models.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	models.WriteJSON(w, http.StatusOK, res)
}
