package graphs_test

import (
	"context"
	"testing"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/domain/graphs"
	"github.com/okian/vrcstatus/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const page = `<!doctype html>
<html><head><title>Status</title></head>
<body>
<div id="vrccharts"></div>
<script>
  const graphs = [
    {
      name: 'ccu',
      title: 'Online users',
      url: 'https://status.example.com/data/ccu.json',
      overlay: "https://status.example.com/data/ccu-lastweek.json",
    },
    { name: "latency", title: "API Latency", url: "https://status.example.com/data/latency.json" },
    { name: 'broken', title: 'API Requests', overlay: 'https://status.example.com/data/req-o.json' },
  ];
  render(graphs);
</script>
</body></html>`

func TestExtractor_Parse(t *testing.T) {
	Convey("Given a graphs extractor", t, func() {
		ctx := context.Background()
		ex := graphs.New(logger.Get())

		Convey("When field names only appear as suffixes of longer keys", func() {
			defs := ex.Parse(ctx, `const graphs = [{ name:'x', subtitle:'API Latency', dataurl:'/d.json' }];`)

			Convey("Then the fragment lacks title and url", func() {
				So(defs, ShouldBeEmpty)
			})
		})

		Convey("When longer keys precede the real fields", func() {
			defs := ex.Parse(ctx, `const graphs = [{ name:'x', subtitle:'Sub', title:'API Latency', dataurl:'/other.json', url:'/d.json' }];`)

			Convey("Then the whole-word fields win", func() {
				So(defs, ShouldHaveLength, 1)
				So(defs[0].Title, ShouldEqual, "API Latency")
				So(defs[0].DataURL, ShouldEqual, "/d.json")
			})
		})

		Convey("When the page declares two complete fragments and one missing url", func() {
			defs := ex.Parse(ctx, page)

			Convey("Then only the complete fragments are returned in order", func() {
				So(defs, ShouldHaveLength, 2)
				So(defs[0], ShouldResemble, chart.Definition{
					Name:       "ccu",
					Title:      "Online users",
					DataURL:    "https://status.example.com/data/ccu.json",
					OverlayURL: "https://status.example.com/data/ccu-lastweek.json",
					Filled:     true,
				})
				So(defs[1].Name, ShouldEqual, "latency")
				So(defs[1].OverlayURL, ShouldEqual, "")
				So(defs[1].Filled, ShouldBeFalse)
			})
		})

		Convey("When the declaration keyword differs in case and spacing", func() {
			defs := ex.Parse(ctx, `CONST   GRAPHS=[{name:'a',title:'t',url:'u'}];`)

			Convey("Then it should still be found", func() {
				So(defs, ShouldHaveLength, 1)
				So(defs[0].DataURL, ShouldEqual, "u")
			})
		})

		Convey("When the declaration is absent", func() {
			defs := ex.Parse(ctx, "<html><body>maintenance</body></html>")

			Convey("Then an empty, non-nil list is returned", func() {
				So(defs, ShouldNotBeNil)
				So(defs, ShouldBeEmpty)
			})
		})

		Convey("When the document is empty", func() {
			So(ex.Parse(ctx, ""), ShouldBeEmpty)
		})

		Convey("When the array is empty", func() {
			So(ex.Parse(ctx, "const graphs = [];"), ShouldBeEmpty)
		})

		Convey("When two declarations exist", func() {
			defs := ex.Parse(ctx, `const graphs = [{name:'a',title:'A',url:'u1'}];
const graphs = [{name:'b',title:'B',url:'u2'}];`)

			Convey("Then only the first one is used", func() {
				So(defs, ShouldHaveLength, 1)
				So(defs[0].Name, ShouldEqual, "a")
			})
		})
	})
}
