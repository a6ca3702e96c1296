// Package svg synthesizes self-contained SVG line charts from numeric series.
//
// Layout is fixed: an 800x400 canvas with padding on every side and the axis
// policy of package axis. Colors are
// inlined so the output renders without any stylesheet; the only shared name
// is the fill gradient, declared inside every chart.
package svg

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/render/axis"
)

// Canvas geometry.
const (
	Width         = 800
	Height        = 400
	PaddingLeft   = 64
	PaddingRight  = 24
	PaddingTop    = 20
	PaddingBottom = 56

	tickLength = 6
)

// Inlined palette.
const (
	colorLine     = "#0e9bb1"
	colorOverlay  = "#0b7f91"
	colorGrid     = "#e0e0e0"
	colorAxis     = "#bdbdbd"
	colorLabel    = "#666666"
	labelFont     = "Inter, Helvetica, Arial, sans-serif"
	labelFontSize = 12
	gradientID    = "gradient-primary"
)

// Options tune a single chart.
type Options struct {
	// Title is embedded as the SVG <title>.
	Title string
	// Filled draws a gradient area under the line.
	Filled bool
	// SmallDecimals labels value ticks below 1 with two decimals.
	SmallDecimals bool
}

// Render draws s (and overlay, if any) as an SVG document. An empty series
// yields a "No data" placeholder.
func Render(s, overlay chart.Series, opts Options) string {
	b, ok := s.Bounds()
	if !ok {
		return Placeholder(opts.Title)
	}
	p := newPlot(b)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="0 0 %d %d" preserveAspectRatio="xMidYMid meet" width="100%%" xmlns="http://www.w3.org/2000/svg">`, Width, Height)
	if opts.Title != "" {
		fmt.Fprintf(&sb, `<title>%s</title>`, html.EscapeString(opts.Title))
	}
	sb.WriteString(`<defs><linearGradient id="` + gradientID + `" x1="0" x2="0" y1="0" y2="1">`)
	sb.WriteString(`<stop offset="0%" stop-color="` + colorLine + `" stop-opacity="0.35"/>`)
	sb.WriteString(`<stop offset="100%" stop-color="` + colorLine + `" stop-opacity="0.06"/>`)
	sb.WriteString(`</linearGradient></defs>`)

	bottom := float64(Height - PaddingBottom)
	right := float64(Width - PaddingRight)
	writeLine(&sb, "axis", PaddingLeft, bottom, right, bottom)
	writeLine(&sb, "axis", PaddingLeft, PaddingTop, PaddingLeft, bottom)

	p.writeValueTicks(&sb, opts.SmallDecimals)
	p.writeTimeTicks(&sb)

	line := p.path(s)
	if opts.Filled && len(s) > 1 {
		first := p.x(s[0].T)
		last := p.x(s[len(s)-1].T)
		fill := line + " L" + num(last) + "," + num(bottom) + " L" + num(first) + "," + num(bottom) + " Z"
		fmt.Fprintf(&sb, `<path class="area" d="%s" fill="url(#%s)" opacity="1"/>`, fill, gradientID)
	}
	fmt.Fprintf(&sb, `<path class="line" d="%s" stroke="%s" stroke-width="3" fill="none"/>`, line, colorLine)

	if len(overlay) > 0 {
		if op := p.path(overlay.Within(b.MinT, b.MaxT)); op != "" {
			fmt.Fprintf(&sb, `<path class="overlay" d="%s" stroke="%s" stroke-width="2" fill="none" stroke-dasharray="5,5"/>`, op, colorOverlay)
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// Placeholder is the chart drawn for an empty series.
func Placeholder(title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="0 0 %d %d" width="100%%" xmlns="http://www.w3.org/2000/svg">`, Width, Height)
	if title != "" {
		fmt.Fprintf(&sb, `<title>%s</title>`, html.EscapeString(title))
	}
	fmt.Fprintf(&sb, `<text class="label" x="%d" y="%d" text-anchor="middle" fill="%s" font-family="%s" font-size="16">No data</text>`,
		Width/2, Height/2, colorLabel, labelFont)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// plot maps data space onto the canvas.
type plot struct {
	axis.Scale
}

func newPlot(b chart.Bounds) plot {
	return plot{Scale: axis.NewScale(b)}
}

func (p plot) x(t float64) float64 {
	return PaddingLeft + (t-p.MinT)*(Width-PaddingLeft-PaddingRight)/p.TRange
}

// y maps v into the plot band. Values below the axis floor of 0 sit on the
// baseline.
func (p plot) y(v float64) float64 {
	y := Height - PaddingBottom - (v-p.MinV)*(Height-PaddingTop-PaddingBottom)/p.VRange
	return math.Min(math.Max(y, PaddingTop), Height-PaddingBottom)
}

// path returns an M/L path with one command per sample, in series order.
func (p plot) path(s chart.Series) string {
	var sb strings.Builder
	for i, pt := range s {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(num(p.x(pt.T)))
		sb.WriteByte(',')
		sb.WriteString(num(p.y(pt.V)))
	}
	return sb.String()
}

func (p plot) writeValueTicks(sb *strings.Builder, smallDecimals bool) {
	for _, v := range p.ValueTicks() {
		y := p.y(v)
		writeLine(sb, "grid", PaddingLeft, y, Width-PaddingRight, y)
		writeLine(sb, "axis", PaddingLeft, y, PaddingLeft-tickLength, y)
		writeLabel(sb, PaddingLeft-10, y+4, "end", axis.ValueLabel(v, smallDecimals))
	}
}

func (p plot) writeTimeTicks(sb *strings.Builder) {
	bottom := float64(Height - PaddingBottom)
	for _, t := range p.TimeTicks() {
		x := p.x(t)
		writeLine(sb, "grid", x, PaddingTop, x, bottom)
		writeLine(sb, "axis", x, bottom, x, bottom+tickLength)
		writeLabel(sb, x, bottom+20, "middle", p.TimeLabel(t))
	}
}

func writeLine(sb *strings.Builder, class string, x1, y1, x2, y2 float64) {
	stroke := colorGrid
	if class == "axis" {
		stroke = colorAxis
	}
	fmt.Fprintf(sb, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
		class, num(x1), num(y1), num(x2), num(y2), stroke)
}

func writeLabel(sb *strings.Builder, x, y float64, anchor, text string) {
	fmt.Fprintf(sb, `<text class="label" x="%s" y="%s" text-anchor="%s" fill="%s" font-family="%s" font-size="%d">%s</text>`,
		num(x), num(y), anchor, colorLabel, labelFont, labelFontSize, html.EscapeString(text))
}

// num prints a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
