// Package api exposes the status pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/vrcstatus/internal/adapters/http/swagger"
	service "github.com/okian/vrcstatus/internal/app"
	"github.com/okian/vrcstatus/pkg/logger"
)

// Pipeline is the part of the service the handlers need.
type Pipeline interface {
	Collect(ctx context.Context) (*service.Result, error)
	Report(ctx context.Context) (string, *service.Result, error)
	Snapshot(ctx context.Context) ([]byte, *service.Result, error)
	Version() string
}

// Server wires HTTP routes for the status API.
type Server struct {
	healthHandler *HealthHandler
	statusHandler *StatusHandler
	reportHandler *ReportHandler
	chartsHandler *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(p Pipeline, log logger.Logger) *Server {
	return &Server{
		healthHandler: NewHealthHandler(p),
		statusHandler: NewStatusHandler(p, log),
		reportHandler: NewReportHandler(p, log),
		chartsHandler: NewChartsHandler(p, log),
	}
}

// Routes returns the router with every endpoint attached.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", MetricsMiddleware(HandleMetrics, "metrics"))
	r.Get("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	r.Get("/report", MetricsMiddleware(s.reportHandler.HandleHTML, "report"))
	r.Get("/report.png", MetricsMiddleware(s.reportHandler.HandlePNG, "report_png"))
	r.Get("/charts/{key}.svg", MetricsMiddleware(s.chartsHandler.HandleSVG, "chart_svg"))
	r.Get("/charts/{key}.png", MetricsMiddleware(s.chartsHandler.HandlePNG, "chart_png"))
	swagger.Register(r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStatus answers with a short plain-text status line.
func writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg + "\n"))
}

// writeFailure maps a pipeline error to a status code and its short message.
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAcquisition):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrNoCharts):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCapabilityUnavailable), errors.Is(err, service.ErrImageUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeStatus(w, status, service.Message(err))
}
