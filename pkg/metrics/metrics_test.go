package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording adjustment metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordAdjustmentComputed(-50)
					RecordAdjustmentComputed(25)
					RecordFallback("no_data")
					RecordFallback("stale_refresh_failed")
					RecordFallback("disabled")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording cache metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordCacheLookup("fresh")
					RecordCacheLookup("stale")
					RecordCacheLookup("miss")
					UpdateCacheEntries(30)
					RecordRefreshShared()
					RecordRefreshFailure()
					RecordSnapshotSaveError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording feed metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordFeedFetch()
					RecordFeedFetchError()
					RecordFeedFetchLatency(123.4)
					RecordFeedRecordSkipped()
					RecordUnknownPlayer()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordHTTPRequest("adjusted-elo", "GET", "200")
					RecordHTTPRequestDuration("adjusted-elo", "GET", "200", 5.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should return the custom registry", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
