package svg

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vrcstatus/internal/domain/chart"
)

var (
	linePath    = regexp.MustCompile(`class="line" d="([^"]*)"`)
	overlayPath = regexp.MustCompile(`class="overlay" d="([^"]*)"`)
	coordinate  = regexp.MustCompile(`[ML](-?[0-9.]+),(-?[0-9.]+)`)
)

func commands(d string) [][]string {
	return coordinate.FindAllStringSubmatch(d, -1)
}

func sample() chart.Series {
	return chart.Series{
		{T: 1700000000, V: 10},
		{T: 1700000600, V: 250},
		{T: 1700001200, V: 40},
		{T: 1700001800, V: 0},
	}
}

func TestRender_NegativeValues(t *testing.T) {
	Convey("Given a series dipping below zero", t, func() {
		s := chart.Series{{T: 1700000000, V: -50}, {T: 1700000300, V: -0.5}, {T: 1700000600, V: 100}}
		overlay := chart.Series{{T: 1700000000, V: -20}, {T: 1700000600, V: 40}}
		out := Render(s, overlay, Options{Title: "Dips", Filled: true})

		Convey("Then every line point stays inside the plot band", func() {
			m := linePath.FindStringSubmatch(out)
			So(m, ShouldHaveLength, 2)
			cmds := commands(m[1])
			So(cmds, ShouldHaveLength, 3)
			for _, c := range cmds {
				y, err := strconv.ParseFloat(c[2], 64)
				So(err, ShouldBeNil)
				So(y, ShouldBeBetweenOrEqual, float64(PaddingTop), float64(Height-PaddingBottom))
			}
			So(cmds[0][2], ShouldEqual, "344")
		})
	})
}

func TestRender_Geometry(t *testing.T) {
	Convey("Given a four point series", t, func() {
		out := Render(sample(), nil, Options{Title: "Online Users"})
		m := linePath.FindStringSubmatch(out)
		So(m, ShouldHaveLength, 2)
		cmds := commands(m[1])

		Convey("Then the line has one command per sample", func() {
			So(cmds, ShouldHaveLength, 4)
			So(strings.HasPrefix(m[1], "M"), ShouldBeTrue)
			So(strings.Count(m[1], " L"), ShouldEqual, 3)
		})

		Convey("Then every y coordinate stays inside the plot band", func() {
			for _, c := range cmds {
				y, err := strconv.ParseFloat(c[2], 64)
				So(err, ShouldBeNil)
				So(y, ShouldBeBetweenOrEqual, float64(PaddingTop), float64(Height-PaddingBottom))
			}
		})

		Convey("Then x runs from the left padding to the right edge", func() {
			So(cmds[0][1], ShouldEqual, "64")
			So(cmds[3][1], ShouldEqual, "776")
		})

		Convey("Then there are six value and seven time grid lines", func() {
			So(strings.Count(out, `class="grid"`), ShouldEqual, 13)
		})

		Convey("Then the gradient is declared exactly once", func() {
			So(strings.Count(out, `id="gradient-primary"`), ShouldEqual, 1)
		})

		Convey("Then the title is embedded", func() {
			So(out, ShouldContainSubstring, "<title>Online Users</title>")
		})

		Convey("Then time labels are UTC month-day hour:minute", func() {
			So(out, ShouldContainSubstring, ">11-14 22:13<")
		})

		Convey("Then no area is drawn when fill is off", func() {
			So(out, ShouldNotContainSubstring, `class="area"`)
		})
	})
}

func TestRender_TimeUnits(t *testing.T) {
	Convey("Given the same instants in seconds and milliseconds", t, func() {
		secs := sample()
		ms := make(chart.Series, len(secs))
		for i, p := range secs {
			ms[i] = chart.Point{T: p.T * 1000, V: p.V}
		}

		Convey("Then both produce the same time labels", func() {
			So(Render(ms, nil, Options{}), ShouldContainSubstring, ">11-14 22:13<")
			So(Render(secs, nil, Options{}), ShouldContainSubstring, ">11-14 22:13<")
		})
	})
}

func TestRender_Fill(t *testing.T) {
	Convey("Given a filled chart", t, func() {
		Convey("When the series has several points", func() {
			out := Render(sample(), nil, Options{Filled: true})

			Convey("Then the area closes down to the baseline", func() {
				So(out, ShouldContainSubstring, `class="area"`)
				So(out, ShouldContainSubstring, "L776,344 L64,344 Z")
				So(out, ShouldContainSubstring, `fill="url(#gradient-primary)"`)
			})
		})

		Convey("When the series has a single point", func() {
			out := Render(chart.Series{{T: 1700000000, V: 5}}, nil, Options{Filled: true})

			Convey("Then only the line is drawn", func() {
				So(out, ShouldNotContainSubstring, `class="area"`)
				m := linePath.FindStringSubmatch(out)
				So(commands(m[1]), ShouldHaveLength, 1)
			})
		})
	})
}

func TestRender_Overlay(t *testing.T) {
	Convey("Given an overlay that extends past the main series", t, func() {
		overlay := chart.Series{
			{T: 1699999000, V: 5},
			{T: 1700000000, V: 6},
			{T: 1700000900, V: 7},
			{T: 1700001800, V: 8},
			{T: 1700009000, V: 9},
		}
		out := Render(sample(), overlay, Options{})

		Convey("Then only samples inside the main window are drawn", func() {
			m := overlayPath.FindStringSubmatch(out)
			So(m, ShouldHaveLength, 2)
			So(commands(m[1]), ShouldHaveLength, 3)
			So(out, ShouldContainSubstring, `stroke-dasharray="5,5"`)
		})
	})

	Convey("Given an overlay entirely outside the window", t, func() {
		out := Render(sample(), chart.Series{{T: 1, V: 1}}, Options{})

		Convey("Then no overlay path is emitted", func() {
			So(out, ShouldNotContainSubstring, `class="overlay"`)
		})
	})
}

func TestRender_Labels(t *testing.T) {
	Convey("Given small values", t, func() {
		s := chart.Series{{T: 1700000000, V: 0.1}, {T: 1700000600, V: 0.5}}

		Convey("When small decimals are requested", func() {
			out := Render(s, nil, Options{SmallDecimals: true})

			Convey("Then ticks below 1 carry two decimals", func() {
				So(out, ShouldContainSubstring, ">0.20<")
				So(out, ShouldContainSubstring, ">0.00<")
				So(out, ShouldContainSubstring, ">1<")
			})
		})

		Convey("When they are not", func() {
			out := Render(s, nil, Options{})

			Convey("Then ticks are rounded integers", func() {
				So(out, ShouldNotContainSubstring, ">0.20<")
				So(out, ShouldContainSubstring, ">0<")
			})
		})
	})

	Convey("Given a title with markup", t, func() {
		out := Render(sample(), nil, Options{Title: `<b>"A&B"</b>`})

		Convey("Then it is escaped", func() {
			So(out, ShouldContainSubstring, "<title>&lt;b&gt;&#34;A&amp;B&#34;&lt;/b&gt;</title>")
		})
	})
}

func TestRender_Empty(t *testing.T) {
	Convey("Given an empty series", t, func() {
		So(func() { Render(nil, chart.Series{{T: 1, V: 1}}, Options{Filled: true}) }, ShouldNotPanic)
		out := Render(chart.Series{}, nil, Options{Title: "API Latency"})

		Convey("Then a placeholder is returned", func() {
			So(out, ShouldStartWith, "<svg")
			So(out, ShouldContainSubstring, "No data")
			So(out, ShouldContainSubstring, "<title>API Latency</title>")
			So(out, ShouldNotContainSubstring, `class="line"`)
		})
	})
}

func TestRender_Deterministic(t *testing.T) {
	Convey("Given the same inputs twice", t, func() {
		a := Render(sample(), sample(), Options{Filled: true, Title: "x"})
		b := Render(sample(), sample(), Options{Filled: true, Title: "x"})

		Convey("Then the output is byte-identical", func() {
			So(a, ShouldEqual, b)
		})
	})
}
