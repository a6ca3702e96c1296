package service

import "errors"

// Command outcomes. Each maps to a short user-facing status via Message.
var (
	ErrAcquisition           = errors.New("acquisition failed")
	ErrNoCharts              = errors.New("no charts found")
	ErrCapabilityUnavailable = errors.New("http capability unavailable")
	ErrImageUnavailable      = errors.New("image unavailable")
)

// ErrPartialDataLoss marks one chart definition whose series could not be
// fetched. It is logged, never returned.
var ErrPartialDataLoss = errors.New("chart data lost")

// Short statuses shown to users.
const (
	MessageAcquisition = "fetch failed, please retry later"
	MessageNoCharts    = "target charts not found"
	MessageNoImage     = "unable to generate image (browser unavailable?)"
	MessageUnexpected  = "something went wrong, please retry later"
)

// Message turns a pipeline error into a short status text.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAcquisition), errors.Is(err, ErrCapabilityUnavailable):
		return MessageAcquisition
	case errors.Is(err, ErrNoCharts):
		return MessageNoCharts
	case errors.Is(err, ErrImageUnavailable):
		return MessageNoImage
	default:
		return MessageUnexpected
	}
}
