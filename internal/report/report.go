// Package report composes rendered charts and derived metrics into a single
// HTML page and captures it as an image.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/domain/metric"
)

//go:embed templates/report.html
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Timestamp layouts for the header.
const (
	UTCLayout     = "1/2/2006, 15:04:05"
	BeijingLayout = "2006/1/2 15:04:05"
)

var beijing = time.FixedZone("CST", 8*60*60)

// Input is everything a report shows.
type Input struct {
	Charts  chart.Rendered
	Metrics metric.Derived
	Version string
	Now     time.Time
}

type card struct {
	Key       chart.Key
	Title     string
	Value     string
	Chart     template.HTML
	FullWidth bool
}

type page struct {
	UTC     string
	Beijing string
	Version string
	Cards   []card
}

// Compose renders the report page. Missing charts get a "No Data"
// placeholder; chart markup is inserted verbatim.
func Compose(in Input) (string, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	p := page{
		UTC:     now.UTC().Format(UTCLayout),
		Beijing: now.In(beijing).Format(BeijingLayout),
		Version: in.Version,
		Cards:   cards(in.Charts, in.Metrics),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.String(), nil
}

func cards(charts chart.Rendered, m metric.Derived) []card {
	out := []card{
		{Key: chart.OnlineUsers, Value: m.LastCCU, FullWidth: true},
		{Key: chart.APILatency, Value: m.LatencyOrDash()},
		{Key: chart.APIRequests, Value: m.RequestsOrDash()},
		{Key: chart.APIErrorRate, Value: m.LastErrorRate},
	}
	// Auth charts only appear when the page had them.
	for _, k := range []chart.Key{chart.SteamAuthSuccessRate, chart.MetaAuthSuccessRate} {
		if _, ok := charts[k]; ok {
			out = append(out, card{Key: k})
		}
	}
	for i := range out {
		out[i].Title = out[i].Key.Title()
		if svg, ok := charts[out[i].Key]; ok {
			out[i].Chart = template.HTML(svg) //nolint:gosec // chart markup is produced by the renderer or the status page itself
		}
	}
	return out
}
