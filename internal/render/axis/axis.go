// Package axis holds the axis policy shared by the chart renderers.
package axis

import (
	"math"
	"strconv"
	"time"

	"github.com/okian/vrcstatus/internal/domain/chart"
)

const (
	// ValueIntervals is the number of intervals on the value axis.
	ValueIntervals = 5
	// TimeIntervals is the number of intervals on the time axis.
	TimeIntervals = 6
	// TimeLayout formats time tick labels (UTC).
	TimeLayout = "01-02 15:04"

	// Timestamps at or above this magnitude are already milliseconds.
	millisecondThreshold = 1e12
)

// Scale is the data-space extent of one chart. The value axis always starts
// at 0 and both ranges are at least 1.
type Scale struct {
	MinT   float64
	TRange float64
	MinV   float64
	VRange float64

	msFactor float64
}

// NewScale derives the scale for a series extent.
func NewScale(b chart.Bounds) Scale {
	s := Scale{
		MinT:     b.MinT,
		TRange:   math.Max(1, b.MaxT-b.MinT),
		VRange:   math.Max(1, b.MaxV),
		msFactor: 1,
	}
	if b.MaxT < millisecondThreshold {
		s.msFactor = 1000
	}
	return s
}

// MaxT is the right edge of the time axis.
func (s Scale) MaxT() float64 { return s.MinT + s.TRange }

// MaxV is the top of the value axis.
func (s Scale) MaxV() float64 { return s.MinV + s.VRange }

// ValueTicks returns ValueIntervals+1 evenly spaced values from MinV.
func (s Scale) ValueTicks() []float64 {
	out := make([]float64, 0, ValueIntervals+1)
	for i := 0; i <= ValueIntervals; i++ {
		out = append(out, s.MinV+float64(i)*s.VRange/ValueIntervals)
	}
	return out
}

// TimeTicks returns TimeIntervals+1 evenly spaced timestamps from MinT.
func (s Scale) TimeTicks() []float64 {
	out := make([]float64, 0, TimeIntervals+1)
	for i := 0; i <= TimeIntervals; i++ {
		out = append(out, s.MinT+float64(i)*s.TRange/TimeIntervals)
	}
	return out
}

// Instant converts a raw timestamp (seconds or milliseconds) to a UTC time.
func (s Scale) Instant(t float64) time.Time {
	return time.UnixMilli(int64(math.Round(t * s.msFactor))).UTC()
}

// TimeLabel formats a raw timestamp.
func (s Scale) TimeLabel(t float64) string {
	return s.Instant(t).Format(TimeLayout)
}

// ValueLabel formats a value tick: two decimals below 1 when small is set,
// otherwise the nearest integer.
func ValueLabel(v float64, small bool) string {
	if small && v < 1 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatInt(int64(math.Round(v)), 10)
}
