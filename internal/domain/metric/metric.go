// Package metric derives the headline indicators shown next to the charts.
package metric

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/vrcstatus/internal/domain/chart"
)

// Placeholders used until a value is computed.
const (
	UnknownCCU       = "Unknown"
	UnknownErrorRate = "—"
	UnknownLevel     = ""
)

// Level labels.
const (
	LevelNormal   = "Normal"
	LevelElevated = "Elevated"
	LevelLow      = "Low"
	LevelMedium   = "Medium"
	LevelHigh     = "High"
)

// Classification thresholds. A value equal to a threshold falls into the
// higher bracket.
const (
	latencyNormalBelow   = 0.25
	latencyElevatedBelow = 0.6
	requestsLowBelow     = 0.3
	requestsMediumBelow  = 0.7
)

var grouping = message.NewPrinter(language.English)

// Derived holds the summary values of one pipeline run. Fields are never
// left empty-by-accident: NewDerived seeds the placeholders.
type Derived struct {
	LastCCU       string `json:"last_ccu"`
	LastErrorRate string `json:"last_error_rate"`
	LatencyLevel  string `json:"latency_level"`
	RequestsLevel string `json:"requests_level"`
}

// NewDerived returns Derived with every field at its placeholder.
func NewDerived() Derived {
	return Derived{
		LastCCU:       UnknownCCU,
		LastErrorRate: UnknownErrorRate,
		LatencyLevel:  UnknownLevel,
		RequestsLevel: UnknownLevel,
	}
}

// Level classifies v for the latency and requests charts. Other keys have
// no level and yield "".
func Level(key chart.Key, v float64) string {
	switch key {
	case chart.APILatency:
		switch {
		case v < latencyNormalBelow:
			return LevelNormal
		case v < latencyElevatedBelow:
			return LevelElevated
		default:
			return LevelHigh
		}
	case chart.APIRequests:
		switch {
		case v < requestsLowBelow:
			return LevelLow
		case v < requestsMediumBelow:
			return LevelMedium
		default:
			return LevelHigh
		}
	}
	return ""
}

// FormatErrorRate renders ratios (<= 1) as percentages and anything larger
// as a plain two-decimal number.
func FormatErrorRate(v float64) string {
	if v <= 1 {
		return fmt.Sprintf("%.2f%%", v*100)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatCCU rounds v and groups digits, e.g. 12345.6 -> "12,346".
func FormatCCU(v float64) string {
	return grouping.Sprintf("%d", int64(math.Round(v)))
}

// Observe folds the latest value of a fetched series into d.
// matched tells whether def resolved to key.
func (d *Derived) Observe(def chart.Definition, key chart.Key, matched bool, s chart.Series) {
	last, ok := s.Last()
	if !ok || math.IsNaN(last.V) {
		return
	}
	if def.Name == chart.CCUName {
		d.LastCCU = FormatCCU(last.V)
	}
	if !matched {
		return
	}
	switch key {
	case chart.APIErrorRate:
		d.LastErrorRate = FormatErrorRate(last.V)
	case chart.APILatency:
		d.LatencyLevel = Level(key, last.V)
	case chart.APIRequests:
		d.RequestsLevel = Level(key, last.V)
	}
}

// LatencyOrDash returns the latency level or an em dash when unknown.
func (d Derived) LatencyOrDash() string { return orDash(d.LatencyLevel) }

// RequestsOrDash returns the requests level or an em dash when unknown.
func (d Derived) RequestsOrDash() string { return orDash(d.RequestsLevel) }

func orDash(s string) string {
	if s == "" {
		return UnknownErrorRate
	}
	return s
}
