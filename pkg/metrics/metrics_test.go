package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "vrcstatus")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.fetchAttempts.WithLabelValues(StrategyDirect, ResultSuccess).Inc()

			Convey("Then metrics carry the namespace and constant labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_fetch_attempts_total" {
						found = true
						labels := f.GetMetric()[0].GetLabel()
						names := make([]string, 0, len(labels))
						for _, l := range labels {
							names = append(names, l.GetName())
						}
						So(names, ShouldContain, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "vrcstatus")
				So(manager.subsystem, ShouldEqual, "pipeline")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording fetch attempts", func() {
			before := testutil.ToFloat64(globalManager.fetchAttempts.WithLabelValues(StrategyBrowser, ResultFailure))
			RecordFetchAttempt(StrategyBrowser, false)

			Convey("Then the labelled counter grows", func() {
				after := testutil.ToFloat64(globalManager.fetchAttempts.WithLabelValues(StrategyBrowser, ResultFailure))
				So(after-before, ShouldEqual, 1.0)
			})
		})

		Convey("When updating derived gauges", func() {
			UpdateOnlineUsers(12345)
			UpdateErrorRate(0.0456)

			Convey("Then they hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.onlineUsers), ShouldEqual, 12345.0)
				So(testutil.ToFloat64(globalManager.errorRate), ShouldEqual, 0.0456)
			})
		})

		Convey("When recording everything else", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordSeriesFetch(SeriesPrimary, true)
					RecordSeriesFetch(SeriesOverlay, false)
					RecordChartRendered(ProducerSynth)
					RecordRenderLatency(1.5)
					RecordPipelineRun("ok", 120)
					RecordSnapshot(true)
					RecordHTTPRequest("/status", "GET", "200")
					RecordHTTPRequestDuration("/status", "GET", "200", 3)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordChartRendered(ProducerBrowser)
			families, err := GetRegistry().Gather()

			Convey("Then pipeline metrics are exposed", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "vrcstatus_pipeline_charts_rendered_total")
			})
		})
	})
}
