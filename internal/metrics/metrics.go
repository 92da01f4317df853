package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dogboarding",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogboarding",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dogboarding",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	staysPriced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogboarding",
			Subsystem: "pricing",
			Name:      "stays_priced_total",
			Help:      "Stays run through the pricing engine, by service type and outcome.",
		},
		[]string{"stay_type", "outcome"},
	)

	billsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dogboarding",
			Subsystem: "billing",
			Name:      "bills_created_total",
			Help:      "Bills generated from stays.",
		},
	)

	paymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogboarding",
			Subsystem: "billing",
			Name:      "payments_recorded_total",
			Help:      "Payments recorded against bills, by method.",
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		staysPriced,
		billsCreated,
		paymentsRecorded,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latencies labelled by the matched route
// pattern, so ids in paths do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

// StayPriced counts one pricing run. outcome is "ok" or a short error class.
func StayPriced(stayType, outcome string) {
	staysPriced.WithLabelValues(stayType, outcome).Inc()
}

func BillCreated() {
	billsCreated.Inc()
}

func PaymentRecorded(method string) {
	paymentsRecorded.WithLabelValues(method).Inc()
}
