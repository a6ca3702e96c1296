package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrUnknownChart = errors.New("unknown chart")
	ErrChartMissing = errors.New("chart not available")
)
