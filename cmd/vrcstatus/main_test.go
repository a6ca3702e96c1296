package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/vrcstatus/internal/app"
	"github.com/okian/vrcstatus/internal/config"
	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then every subcommand should be registered", func() {
			names := map[string]bool{}
			for _, c := range root.Commands() {
				names[c.Name()] = true
			}
			convey.So(names["serve"], convey.ShouldBeTrue)
			convey.So(names["snapshot"], convey.ShouldBeTrue)
			convey.So(names["charts"], convey.ShouldBeTrue)
			convey.So(names["version"], convey.ShouldBeTrue)
		})

		convey.Convey("When running version", func() {
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"version"})
			err := root.Execute()

			convey.Convey("Then it should print the version", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldEqual, service.Version()+"\n")
			})
		})

		convey.Convey("When running charts with a bad format", func() {
			root.SetArgs([]string{"charts", "--format", "gif"})
			err := root.Execute()

			convey.Convey("Then it should be rejected before any fetch", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "invalid format")
			})
		})
	})
}

func TestOutputPath(t *testing.T) {
	convey.Convey("Given the snapshot output flag", t, func() {
		convey.Convey("Then the default follows the chosen format", func() {
			convey.So(outputPath("", false), convey.ShouldEqual, "report.png")
			convey.So(outputPath("", true), convey.ShouldEqual, "report.html")
		})

		convey.Convey("Then an explicit path always wins", func() {
			convey.So(outputPath("out/x.bin", true), convey.ShouldEqual, "out/x.bin")
			convey.So(outputPath("out/x.bin", false), convey.ShouldEqual, "out/x.bin")
		})
	})
}

func TestExitMessage(t *testing.T) {
	convey.Convey("Given command errors", t, func() {
		convey.So(exitMessage(service.ErrNoCharts), convey.ShouldEqual, service.MessageNoCharts)
		convey.So(exitMessage(io.ErrUnexpectedEOF), convey.ShouldEqual, io.ErrUnexpectedEOF.Error())
	})
}

func TestBuildService(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		cfg := config.New()

		convey.Convey("When the browser is disabled", func() {
			cfg.BrowserEnabled = false
			svc, closer := buildService(cfg)
			defer closer()

			convey.Convey("Then the snapshot should report the missing browser", func() {
				convey.So(svc, convey.ShouldNotBeNil)
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_, _, err := svc.Snapshot(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the browser is enabled", func() {
			svc, closer := buildService(cfg)

			convey.Convey("Then closing without use should not panic", func() {
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(closer, convey.ShouldNotPanic)
			})
		})
	})
}

func TestWriteCharts(t *testing.T) {
	convey.Convey("Given a collected result", t, func() {
		dir := t.TempDir()
		res := &service.Result{
			Charts: chart.Rendered{
				chart.OnlineUsers: "<svg>users</svg>",
				chart.APILatency:  "<svg>latency</svg>",
			},
			Plots: map[chart.Key]service.Plot{
				chart.OnlineUsers: {
					Definition: chart.Definition{Name: chart.CCUName, Title: "Online users", Filled: true},
					Series:     chart.Series{{T: 1700000000, V: 1}, {T: 1700000060, V: 2}},
				},
				chart.APIErrorRate: {
					Definition: chart.Definition{Name: "errors", Title: "API Error Rate"},
				},
			},
		}

		convey.Convey("When writing svg files", func() {
			written, err := writeCharts(res, dir, formatSVG)

			convey.Convey("Then one file per chart should exist in key order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(written, convey.ShouldResemble, []string{
					filepath.Join(dir, "online-users.svg"),
					filepath.Join(dir, "api-latency.svg"),
				})
				b, err := os.ReadFile(written[1])
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, "<svg>latency</svg>")
			})
		})

		convey.Convey("When writing png files", func() {
			written, err := writeCharts(res, filepath.Join(dir, "png"), formatPNG)

			convey.Convey("Then plots without data should be skipped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(written, convey.ShouldHaveLength, 1)
				b, err := os.ReadFile(written[0])
				convey.So(err, convey.ShouldBeNil)
				convey.So(http.DetectContentType(b), convey.ShouldEqual, "image/png")
			})
		})
	})
}

func TestRunServer(t *testing.T) {
	convey.Convey("Given a server on a free port", t, func() {
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
		ctx, cancel := context.WithCancel(context.Background())

		convey.Convey("When the context is cancelled", func() {
			done := make(chan error, 1)
			go func() { done <- runServer(ctx, srv, logger.Get()) }()
			time.Sleep(50 * time.Millisecond)
			cancel()

			convey.Convey("Then it should shut down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("timeout", convey.ShouldBeEmpty)
				}
			})
		})
	})
}
