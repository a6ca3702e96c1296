// Package raster renders series as PNG line charts with go-chart.
package raster

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	domain "github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/render/axis"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
)

var (
	colorLine    = drawing.ColorFromHex("0e9bb1")
	colorOverlay = drawing.ColorFromHex("0b7f91")
	colorGrid    = drawing.ColorFromHex("e0e0e0")
	colorLabel   = drawing.ColorFromHex("666666")
)

// Options tune a single PNG chart.
type Options struct {
	Title         string
	Filled        bool
	SmallDecimals bool
	Width         int
	Height        int
}

// RenderPNG draws s (and overlay, if any) to PNG bytes.
func RenderPNG(s, overlay domain.Series, opts Options) ([]byte, error) {
	b, ok := s.Bounds()
	if !ok {
		return nil, ErrNoData
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	sc := axis.NewScale(b)

	main := lineStyle(colorLine, 3)
	if opts.Filled && len(s) > 1 {
		main.FillColor = colorLine.WithAlpha(90)
	}
	series := []chart.Series{timeSeries(sc, opts.Title, s, main)}

	if len(overlay) > 0 {
		if within := overlay.Within(b.MinT, b.MaxT); len(within) > 0 {
			st := lineStyle(colorOverlay, 2)
			st.StrokeDashArray = []float64{5, 5}
			series = append(series, timeSeries(sc, "overlay", within, st))
		}
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 24, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Style:          axisStyle(),
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(sc.Instant(sc.MinT)), Max: chart.TimeToFloat64(sc.Instant(sc.MaxT()))},
			Ticks:          timeTicks(sc),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Style:          axisStyle(),
			Range:          &chart.ContinuousRange{Min: sc.MinV, Max: sc.MaxV()},
			Ticks:          valueTicks(sc, opts.SmallDecimals),
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// timeSeries converts samples to a go-chart series. A single sample is padded
// to two so the X range is never zero.
func timeSeries(sc axis.Scale, name string, s domain.Series, st chart.Style) chart.TimeSeries {
	xs := make([]time.Time, 0, len(s)+1)
	ys := make([]float64, 0, len(s)+1)
	for _, p := range s {
		xs = append(xs, sc.Instant(p.T))
		ys = append(ys, p.V)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}
	return chart.TimeSeries{Name: name, XValues: xs, YValues: ys, Style: st}
}

func timeTicks(sc axis.Scale) []chart.Tick {
	raw := sc.TimeTicks()
	ticks := make([]chart.Tick, len(raw))
	for i, t := range raw {
		ticks[i] = chart.Tick{Value: chart.TimeToFloat64(sc.Instant(t)), Label: sc.TimeLabel(t)}
	}
	return ticks
}

func valueTicks(sc axis.Scale, small bool) []chart.Tick {
	raw := sc.ValueTicks()
	ticks := make([]chart.Tick, len(raw))
	for i, v := range raw {
		ticks[i] = chart.Tick{Value: v, Label: axis.ValueLabel(v, small)}
	}
	return ticks
}

func lineStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{StrokeColor: col, StrokeWidth: width}
}

func axisStyle() chart.Style {
	return chart.Style{FontColor: colorLabel, StrokeColor: colorGrid}
}

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: colorGrid, StrokeWidth: 1}
}
