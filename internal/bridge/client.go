// Package bridge talks to the external database bridge process over HTTP.
// Query failures of any kind collapse to an empty result set: a broken query
// must never take down the orchestrator or the dashboard fan-out.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	queryTimeout  = 20 * time.Second
	healthTimeout = 5 * time.Second

	// The bridge is usually exposed through an ngrok tunnel; without this
	// header ngrok answers with an HTML interstitial instead of JSON.
	ngrokSkipHeader = "ngrok-skip-browser-warning"
	ngrokSkipValue  = "69420"
)

// HealthState is the tri-state outcome of a liveness check.
type HealthState string

const (
	StateHealthy     HealthState = "healthy"
	StateDegraded    HealthState = "degraded"    // bridge up, database connection down
	StateUnreachable HealthState = "unreachable" // bridge process not answering
)

// HealthStatus is what CheckHealth reports. Never an error; callers read
// the state.
type HealthStatus struct {
	State  HealthState `json:"state"`
	Detail string      `json:"detail,omitempty"`
}

// Reachable reports whether the bridge process answered at all.
func (s HealthStatus) Reachable() bool { return s.State != StateUnreachable }

// Client issues queries against a configured bridge endpoint. The endpoint
// is the only mutable state and is guarded for concurrent readers while the
// UI updates it.
type Client struct {
	mu           sync.RWMutex
	baseURL      string
	originScheme string // scheme the dashboard itself is served over
	http         *http.Client
}

// New creates a client for the given endpoint. originScheme is the scheme
// the calling dashboard is served over; it is only used to diagnose
// mixed-content configurations.
func New(baseURL, originScheme string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		originScheme: originScheme,
		http:         &http.Client{Timeout: queryTimeout},
	}
}

// BaseURL returns the currently configured endpoint.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL swaps the endpoint. Callers persist the value themselves after
// a successful validation.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func setBridgeHeaders(req *http.Request) {
	req.Header.Set(ngrokSkipHeader, ngrokSkipValue)
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
}

// Execute runs one SQL statement through POST {base}/query and returns the
// rows. It never returns an error: connection failures, timeouts, non-2xx
// statuses and malformed bodies all yield an empty (non-nil) slice.
func (c *Client) Execute(ctx context.Context, sql string) []models.ResultRow {
	empty := []models.ResultRow{}

	body, err := json.Marshal(map[string]string{"sql": sql})
	if err != nil {
		return empty
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/query", bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("bridge request build failed")
		return empty
	}
	req.Header.Set("Content-Type", "application/json")
	setBridgeHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("bridge query failed")
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("bridge query returned non-success status")
		return empty
	}

	var rows []models.ResultRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		log.Warn().Err(err).Msg("bridge returned malformed JSON")
		return empty
	}
	if rows == nil {
		return empty
	}
	return rows
}

// CheckHealth probes GET {base}/health and classifies the endpoint. A
// secure-origin dashboard pointed at an http endpoint is reported as
// unreachable up front: the browser blocks mixed content before any request
// leaves the page, so probing would only mislead.
func (c *Client) CheckHealth(ctx context.Context) HealthStatus {
	base := c.BaseURL()

	if c.originScheme == "https" && strings.HasPrefix(base, "http://") {
		return HealthStatus{
			State:  StateUnreachable,
			Detail: "mixed content: the dashboard is served over https but the bridge endpoint uses plain http. The browser blocks these requests outright; use an https tunnel to the bridge or serve the dashboard over http.",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return HealthStatus{State: StateUnreachable, Detail: err.Error()}
	}
	setBridgeHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return HealthStatus{State: StateUnreachable, Detail: "bridge not reachable: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{
			State:  StateDegraded,
			Detail: fmt.Sprintf("bridge answered with status %d: its database connection is down", resp.StatusCode),
		}
	}
	return HealthStatus{State: StateHealthy}
}
