package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with every option", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})

			Convey("And series are named under the namespace", func() {
				manager.loginAttempts.WithLabelValues(OutcomeSuccess).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_login_attempts_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "outcome")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When options receive empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "xpdash")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording upstream queries", func() {
			before := testutil.ToFloat64(globalManager.upstreamQueries.WithLabelValues("user", OutcomeSuccess))
			RecordUpstreamQuery("user", OutcomeSuccess, 12.5)
			RecordUpstreamRecords("user", 1)
			RecordUpstreamBytes(512)

			Convey("Then the counter increases", func() {
				after := testutil.ToFloat64(globalManager.upstreamQueries.WithLabelValues("user", OutcomeSuccess))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording fallbacks and skill query shapes", func() {
			before := testutil.ToFloat64(globalManager.queryFallbacks.WithLabelValues("skills"))
			RecordQueryFallback("skills")
			RecordSkillQueryShape("ilike")

			Convey("Then the fallback counter increases", func() {
				after := testutil.ToFloat64(globalManager.queryFallbacks.WithLabelValues("skills"))
				So(after-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.skillQueryShapes.WithLabelValues("ilike")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording logins and expired sessions", func() {
			before := testutil.ToFloat64(globalManager.sessionsExpired)
			RecordLoginAttempt(OutcomeFailure)
			RecordSessionExpired()

			Convey("Then both are counted", func() {
				So(testutil.ToFloat64(globalManager.sessionsExpired)-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.loginAttempts.WithLabelValues(OutcomeFailure)), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording dashboard builds and chart renders", func() {
			So(func() {
				RecordDashboardBuild(OutcomeSuccess, 120)
				RecordDashboardBuild(OutcomeFallback, 300)
				RecordChartRender("projects-pie")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("projects-pie")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequest("/dashboard", "GET", "200")
				RecordHTTPRequestDuration("/login", "POST", "401", 15.0)
			}, ShouldNotPanic)
		})

		Convey("When recording error metrics", func() {
			So(func() {
				RecordErrorByComponent("graphql", "timeout")
				RecordErrorByType("upstream_error", "error")
				RecordErrorByEndpoint("/dashboard", "GET", "upstream_error")
				RecordErrorLatency("http", "session_expired", 3.0)
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("When recording is disabled", func() {
			previous := globalManager.enabled
			globalManager.enabled = false
			before := testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("pass-fail"))
			RecordChartRender("pass-fail")
			after := testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("pass-fail"))
			globalManager.enabled = previous

			Convey("Then nothing is recorded", func() {
				So(after, ShouldEqual, before)
			})
		})
	})
}

func TestRegistryExposition(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordUpstreamQuery("audit", OutcomeFailure, 40)

		Convey("When gathering", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			Convey("Then xpdash series are exposed without default Go collectors", func() {
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				joined := strings.Join(names, ",")
				So(joined, ShouldContainSubstring, "xpdash_upstream_queries_total")
				So(joined, ShouldNotContainSubstring, "go_goroutines")
			})
		})
	})
}
