package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "usersgen"

// Import record results
const (
	ResultImported = "imported"
	ResultFailed   = "failed"
)

// Auth attempt results
const (
	AuthSuccess = "success"
	AuthFailure = "failure"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// batch import
	ImportRecords  *prometheus.CounterVec
	ImportDuration prometheus.Histogram

	GeneratedProfiles prometheus.Counter
	AuthAttempts      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry together with the Go
// and process collectors.
func New() *Prom {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewProm(reg, reg)
}

func NewProm(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		ImportRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "records_total",
				Help:      "Batch import records by result.",
			},
			[]string{"result"}, // imported|failed
		),
		ImportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "duration_seconds",
				Help:      "Batch import duration.",
				// bcrypt dominates; a full 10KB batch hashes a few dozen passwords
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		GeneratedProfiles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "generator",
				Name:      "profiles_total",
				Help:      "Synthetic profiles generated.",
			},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "attempts_total",
				Help:      "Login attempts by result.",
			},
			[]string{"result"}, // success|failure
		),
		gatherer: gatherer,
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.ImportRecords, p.ImportDuration, p.GeneratedProfiles, p.AuthAttempts)

	return p
}

// ObserveImport records the outcome of one batch.
func (p *Prom) ObserveImport(imported, failed int, d time.Duration) {
	p.ImportRecords.WithLabelValues(ResultImported).Add(float64(imported))
	p.ImportRecords.WithLabelValues(ResultFailed).Add(float64(failed))
	p.ImportDuration.Observe(d.Seconds())
}

func (p *Prom) ObserveAuth(ok bool) {
	result := AuthFailure
	if ok {
		result = AuthSuccess
	}
	p.AuthAttempts.WithLabelValues(result).Inc()
}

func (p *Prom) ObserveGenerated(n int) {
	p.GeneratedProfiles.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only known after routing
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
