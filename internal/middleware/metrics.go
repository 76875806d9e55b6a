package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the HTTP API.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	DBPool           *prometheus.GaugeVec
}

// NewMetrics registers the API collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "roamwyth",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "roamwyth",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "roamwyth",
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
		DBPool: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "roamwyth",
				Subsystem: "db",
				Name:      "pool_connections",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // total, idle, acquired
		),
	}
}

// SetPoolStats records a snapshot of the connection pool.
func (m *Metrics) SetPoolStats(total, idle, acquired int32) {
	m.DBPool.WithLabelValues("total").Set(float64(total))
	m.DBPool.WithLabelValues("idle").Set(float64(idle))
	m.DBPool.WithLabelValues("acquired").Set(float64(acquired))
}

// Handler returns a middleware that counts and times every request.
// The route label is chi's route pattern so path parameters do not explode
// label cardinality; unmatched requests are labelled "unmatched".
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
