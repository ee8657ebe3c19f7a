package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig wires the handlers served by NewRouter.
type RouterConfig struct {
	Score  *ScoreHandlers
	Health *HealthHandlers

	// Gatherer serves /metrics when non-nil.
	Gatherer prometheus.Gatherer
}

// NewRouter returns the scoring server's route table.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/score/gv", cfg.Score.ScoreGv)
	mux.HandleFunc("/health", cfg.Health.Health)

	if cfg.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			NotFound(w, r)
			return
		}
		writeJSON(w, r.Context(), http.StatusOK, map[string]string{
			"service": "homemixer-gv",
			"version": "0.1.0",
		})
	})

	return mux
}
