package raster

import (
	"bytes"
	"image/png"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vrcstatus/internal/domain/chart"
)

func TestRenderPNG(t *testing.T) {
	Convey("Given a series with an overlay", t, func() {
		s := chart.Series{{T: 1700000000, V: 10}, {T: 1700000600, V: 250}, {T: 1700001200, V: 40}}
		overlay := chart.Series{{T: 1600000000, V: 1}, {T: 1700000300, V: 20}, {T: 1700000900, V: 30}}

		Convey("When rendered filled at the default size", func() {
			out, err := RenderPNG(s, overlay, Options{Title: "Online users", Filled: true})

			Convey("Then a valid 800x400 PNG is produced", func() {
				So(err, ShouldBeNil)
				img, err := png.Decode(bytes.NewReader(out))
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 800)
				So(img.Bounds().Dy(), ShouldEqual, 400)
			})
		})

		Convey("When a custom size is requested", func() {
			out, err := RenderPNG(s, nil, Options{Width: 640, Height: 320, SmallDecimals: true})

			Convey("Then the image has that size", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(bytes.NewReader(out))
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 640)
				So(cfg.Height, ShouldEqual, 320)
			})
		})
	})

	Convey("Given a single sample", t, func() {
		out, err := RenderPNG(chart.Series{{T: 1700000000000, V: 0.4}}, nil, Options{SmallDecimals: true, Filled: true})

		Convey("Then it still renders", func() {
			So(err, ShouldBeNil)
			So(out, ShouldNotBeEmpty)
		})
	})

	Convey("Given an empty series", t, func() {
		out, err := RenderPNG(nil, nil, Options{})

		Convey("Then ErrNoData is returned", func() {
			So(err, ShouldEqual, ErrNoData)
			So(out, ShouldBeNil)
		})
	})
}
