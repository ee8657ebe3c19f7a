package api

import (
	"net/http"
	"time"
)

// HealthHandlers serves the liveness endpoint.
type HealthHandlers struct {
	metricsEnabled bool
}

// NewHealthHandlers creates the health handlers.
func NewHealthHandlers(metricsEnabled bool) *HealthHandlers {
	return &HealthHandlers{metricsEnabled: metricsEnabled}
}

// HealthResponse represents the JSON response for health checks.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// Health handles GET /health. The scorer has no external dependencies, so the
// process is healthy whenever it can answer.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	checks := map[string]string{
		"runtime": "ok",
		"metrics": "disabled",
	}
	if h.metricsEnabled {
		checks["metrics"] = "ok"
	}

	writeJSON(w, r.Context(), http.StatusOK, HealthResponse{
		Status:    "healthy",
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
