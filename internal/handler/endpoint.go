package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/insightdeck/insightdeck/internal/bridge"
	"github.com/insightdeck/insightdeck/internal/config"
	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/rs/zerolog/log"
)

// EndpointRequest is the body of PUT /api/v1/bridge/endpoint.
type EndpointRequest struct {
	URL string `json:"url"`
}

// EndpointHandler updates the bridge endpoint: probe first, swap and
// persist only on a reachable answer. Persisting the last-known-good
// endpoint is this caller's job, not the bridge client's.
type EndpointHandler struct {
	bridge *bridge.Client
	cfg    *config.Config
}

func NewEndpointHandler(br *bridge.Client, cfg *config.Config) *EndpointHandler {
	return &EndpointHandler{bridge: br, cfg: cfg}
}

// SetEndpoint handles PUT /api/v1/bridge/endpoint.
func (h *EndpointHandler) SetEndpoint(w http.ResponseWriter, r *http.Request) {
	var req EndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		models.WriteError(w, http.StatusBadRequest, "url must be an absolute http or https address")
		return
	}

	probe := bridge.New(req.URL, h.cfg.OriginScheme)
	hs := probe.CheckHealth(r.Context())
	if !hs.Reachable() {
		models.WriteError(w, http.StatusBadGateway, "could not reach the database bridge: "+hs.Detail)
		return
	}

	h.bridge.SetBaseURL(req.URL)
	if err := h.cfg.SaveEndpoint(req.URL); err != nil {
		log.Warn().Err(err).Msg("bridge endpoint accepted but not persisted")
	}

	models.WriteJSON(w, http.StatusOK, hs)
}
