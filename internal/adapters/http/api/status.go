package api

import (
	"net/http"

	"github.com/okian/vrcstatus/pkg/logger"
)

// StatusHandler serves the collected indicators as JSON.
type StatusHandler struct {
	pipeline Pipeline
	log      logger.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(p Pipeline, log logger.Logger) *StatusHandler {
	return &StatusHandler{pipeline: p, log: log}
}

// HandleStatus handles GET /status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.pipeline.Collect(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "status request failed", logger.Error(err))
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
