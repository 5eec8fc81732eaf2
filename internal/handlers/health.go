package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandlers serves the liveness and readiness endpoints.
type HealthHandlers struct {
	started time.Time
	clock   func() time.Time
}

// NewHealthHandlers constructs health handlers anchored at the current time.
func NewHealthHandlers() *HealthHandlers {
	now := time.Now().UTC()
	return &HealthHandlers{
		started: now,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Healthz responds with a simple status payload for liveness monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.clock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.started).String(),
		"timestamp": now.Format(time.RFC3339),
	})
}

// Readyz reports readiness; the service holds no external connections, so
// readiness follows liveness.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	h.Healthz(w, r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
