package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the service collectors. Build it once per registry.
type Metrics struct {
	requestDuration *prometheus.SummaryVec
	requests        *prometheus.CounterVec
	parses          *prometheus.CounterVec
	renders         *prometheus.CounterVec
}

// New registers the collectors on reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		requestDuration: f.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		parses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_parse_total",
				Help: "Resume documents parsed, by input format and result",
			},
			[]string{"format", "result"},
		),
		renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_render_total",
				Help: "PDF renders, by target (remote or local) and result",
			},
			[]string{"target", "result"},
		),
	}
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveParse counts one parse of the given format.
func (m *Metrics) ObserveParse(format string, err error) {
	if m == nil {
		return
	}
	m.parses.WithLabelValues(format, result(err)).Inc()
}

// ObserveRender counts one PDF render.
func (m *Metrics) ObserveRender(target string, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(target, result(err)).Inc()
}

// Middleware records duration and count per route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := strconv.Itoa(c.Response().StatusCode())
		m.requestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(c.Method(), path, status).Inc()
		return err
	}
}

// ParseCounter exposes the parse counter for tests.
func (m *Metrics) ParseCounter() *prometheus.CounterVec { return m.parses }

// RenderCounter exposes the render counter for tests.
func (m *Metrics) RenderCounter() *prometheus.CounterVec { return m.renders }
