package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Config labels every series with the service identity.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics captures explorer pipeline and HTTP signals. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	rowsFetched   prometheus.Counter
	rowsExcluded  prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers the collectors on registerer, or on the default registerer
// when nil.
func New(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "bookings-insights"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "insights_pipeline_stage_duration_seconds",
			Help:        "Explorer pipeline stage latency by stage and outcome.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			ConstLabels: constLabels,
		}, []string{"stage", "outcome"}),
		rowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "insights_rows_fetched_total",
			Help:        "Booking rows returned by the record source.",
			ConstLabels: constLabels,
		}),
		rowsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "insights_rows_unparseable_total",
			Help:        "Fetched booking rows left out of time series for an unparseable event timestamp.",
			ConstLabels: constLabels,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.stageDuration,
		m.rowsFetched,
		m.rowsExcluded,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	m.stageDuration.WithLabelValues(stage, outcome).Observe(d.Seconds())
}

func (m *Metrics) ObserveRows(fetched, excluded int) {
	if m == nil {
		return
	}
	m.rowsFetched.Add(float64(fetched))
	m.rowsExcluded.Add(float64(excluded))
}

// FiberMiddleware counts requests by matched route.
func (m *Metrics) FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
