// Package graphs pulls the embedded chart table out of the status page markup.
//
// The page declares its charts as a script-level array literal:
//
//	const graphs = [
//	  { name: 'ccu', title: 'Online users', url: '/api/ccu.json', overlay: '/api/ccu-baseline.json' },
//	  ...
//	];
//
// Extraction is pattern based and deliberately narrow: it tolerates the
// literal spanning lines and one level of object nesting, nothing more. It is
// brittle to upstream format changes and never fails; a miss yields no charts.
package graphs

import (
	"context"
	"regexp"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/pkg/logger"
)

var (
	declPattern     = regexp.MustCompile(`(?i)const\s+graphs\s*=\s*\[([\s\S]*?)\];`)
	fragmentPattern = regexp.MustCompile(`\{[\s\S]*?\}`)

	namePattern    = fieldPattern("name")
	titlePattern   = fieldPattern("title")
	urlPattern     = fieldPattern("url")
	overlayPattern = fieldPattern("overlay")
)

// fieldPattern matches `field: 'value'` or `field: "value"`. The field must
// start at a word boundary so `subtitle:` never counts as `title:`.
func fieldPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + field + `:\s*['"]([^'"]+)`)
}

// Extractor parses chart definitions out of a document.
type Extractor struct {
	log logger.Logger
}

// New returns an Extractor that reports diagnostics to log.
func New(log logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Parse returns every well-formed definition in document, in declaration
// order. A fragment needs name, title and url; overlay is optional.
func (e *Extractor) Parse(ctx context.Context, document string) []chart.Definition {
	e.log.Debug(ctx, "parse graphs start", logger.Int("length", len(document)))

	m := declPattern.FindStringSubmatch(document)
	if m == nil {
		e.log.Warn(ctx, "graphs config not found", logger.Error(ErrNotFound))
		return []chart.Definition{}
	}

	fragments := fragmentPattern.FindAllString(m[1], -1)
	defs := make([]chart.Definition, 0, len(fragments))
	for i, f := range fragments {
		name := field(namePattern, f)
		title := field(titlePattern, f)
		url := field(urlPattern, f)
		if name == "" || title == "" || url == "" {
			e.log.Debug(ctx, "graph fragment skipped",
				logger.Int("index", i),
				logger.Bool("has_name", name != ""),
				logger.Bool("has_title", title != ""),
				logger.Bool("has_url", url != ""),
			)
			continue
		}
		defs = append(defs, chart.NewDefinition(name, title, url, field(overlayPattern, f)))
	}

	e.log.Debug(ctx, "graphs parsed", logger.Int("count", len(defs)), logger.Int("fragments", len(fragments)))
	return defs
}

func field(re *regexp.Regexp, fragment string) string {
	if m := re.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}
