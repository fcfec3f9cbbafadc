package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method", "status_code"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "status_code"})

	dbRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_request_duration_seconds",
		Help:    "Duration of repository calls.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
	}, []string{"method"})

	dbRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "db_requests_total",
		Help: "Total number of repository calls.",
	}, []string{"method"})
)

// ObserveHTTPRequest records one served request. path is the route pattern,
// not the raw URL, to keep label cardinality bounded.
func ObserveHTTPRequest(path, method, statusCode string, duration time.Duration) {
	httpRequestDuration.WithLabelValues(path, method, statusCode).Observe(duration.Seconds())
	httpRequestsTotal.WithLabelValues(path, method, statusCode).Inc()
}

// ObserveDBRequest records one repository call, e.g. "movies.create".
func ObserveDBRequest(method string, duration time.Duration) {
	dbRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	dbRequestsTotal.WithLabelValues(method).Inc()
}

// Middleware observes every request passing through the echo router. statusOf
// resolves the status a returned error will be rendered with; nil falls back
// to echo.HTTPError codes and 500 for everything else.
func Middleware(statusOf func(error) int) echo.MiddlewareFunc {
	if statusOf == nil {
		statusOf = statusFromError
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			ObserveHTTPRequest(path, c.Request().Method, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func statusFromError(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
