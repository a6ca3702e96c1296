package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/vrcstatus/pkg/metrics"
)

// HealthHandler handles liveness checks.
type HealthHandler struct {
	versioner interface{ Version() string }
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(v interface{ Version() string }) *HealthHandler {
	return &HealthHandler{versioner: v}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleHealth handles GET /healthz. It never touches upstream.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: h.versioner.Version()})
}

// HandleMetrics serves the custom Prometheus registry.
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
