package raster

import "errors"

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to render")
