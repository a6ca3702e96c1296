package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/render/raster"
	"github.com/okian/vrcstatus/pkg/logger"
)

// ChartsHandler serves single charts.
type ChartsHandler struct {
	pipeline Pipeline
	log      logger.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(p Pipeline, log logger.Logger) *ChartsHandler {
	return &ChartsHandler{pipeline: p, log: log}
}

func chartKey(r *http.Request) (chart.Key, error) {
	k := chart.Key(chi.URLParam(r, "key"))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownChart, k)
	}
	return k, nil
}

// HandleSVG handles GET /charts/{key}.svg.
func (h *ChartsHandler) HandleSVG(w http.ResponseWriter, r *http.Request) {
	key, err := chartKey(r)
	if err != nil {
		writeStatus(w, http.StatusNotFound, err.Error())
		return
	}
	res, err := h.pipeline.Collect(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "chart request failed", logger.String("key", string(key)), logger.Error(err))
		writeFailure(w, err)
		return
	}
	svg, ok := res.Charts[key]
	if !ok {
		writeStatus(w, http.StatusNotFound, ErrChartMissing.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}

// HandlePNG handles GET /charts/{key}.png. It draws from the fetched series
// and needs no browser.
func (h *ChartsHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	key, err := chartKey(r)
	if err != nil {
		writeStatus(w, http.StatusNotFound, err.Error())
		return
	}
	res, err := h.pipeline.Collect(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "chart request failed", logger.String("key", string(key)), logger.Error(err))
		writeFailure(w, err)
		return
	}
	plot, ok := res.Plots[key]
	if !ok {
		writeStatus(w, http.StatusNotFound, ErrChartMissing.Error())
		return
	}
	img, err := raster.RenderPNG(plot.Series, plot.Overlay, raster.Options{
		Title:         plot.Definition.Title,
		Filled:        plot.Definition.Filled,
		SmallDecimals: key.SmallDecimals(),
	})
	if err != nil {
		h.log.Warn(r.Context(), "chart png render failed", logger.String("key", string(key)), logger.Error(err))
		writeStatus(w, http.StatusNotFound, ErrChartMissing.Error())
		return
	}
	writePNG(w, img)
}
