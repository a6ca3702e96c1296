package api

import (
	"net/http"

	"github.com/okian/vrcstatus/pkg/logger"
)

// ReportHandler serves the composed report.
type ReportHandler struct {
	pipeline Pipeline
	log      logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(p Pipeline, log logger.Logger) *ReportHandler {
	return &ReportHandler{pipeline: p, log: log}
}

// HandleHTML handles GET /report.
func (h *ReportHandler) HandleHTML(w http.ResponseWriter, r *http.Request) {
	html, _, err := h.pipeline.Report(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "report request failed", logger.Error(err))
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// HandlePNG handles GET /report.png.
func (h *ReportHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	img, _, err := h.pipeline.Snapshot(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "report image request failed", logger.Error(err))
		writeFailure(w, err)
		return
	}
	writePNG(w, img)
}

func writePNG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
