package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTPRequest(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	for i := 0; i < 3; i++ {
		ObserveHTTPRequest("/movies/:id", "GET", "200", 50*time.Millisecond)
	}

	counter := httpRequestsTotal.WithLabelValues("/movies/:id", "GET", "200")
	assert.Equal(t, float64(3), testutil.ToFloat64(counter))
}

func TestObserveDBRequest(t *testing.T) {
	dbRequestsTotal.Reset()
	dbRequestDuration.Reset()

	ObserveDBRequest("movies.create", 20*time.Millisecond)

	counter := dbRequestsTotal.WithLabelValues("movies.create")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMiddleware(t *testing.T) {
	errDomain := errors.New("domain failure")

	tests := []struct {
		name       string
		statusOf   func(error) int
		handler    echo.HandlerFunc
		wantStatus string
	}{
		{
			name: "records response status",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			},
			wantStatus: "204",
		},
		{
			name: "records echo error code",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusUnsupportedMediaType)
			},
			wantStatus: "415",
		},
		{
			name: "unknown error counts as 500",
			handler: func(c echo.Context) error {
				return errDomain
			},
			wantStatus: "500",
		},
		{
			name: "resolver maps domain error",
			statusOf: func(err error) int {
				if errors.Is(err, errDomain) {
					return http.StatusConflict
				}
				return http.StatusInternalServerError
			},
			handler: func(c echo.Context) error {
				return errDomain
			},
			wantStatus: "409",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()

			e := echo.New()
			e.Use(Middleware(tt.statusOf))
			e.PUT("/movies/:id", tt.handler)

			req := httptest.NewRequest(http.MethodPut, "/movies/42", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			counter := httpRequestsTotal.WithLabelValues("/movies/:id", "PUT", tt.wantStatus)
			assert.Equal(t, float64(1), testutil.ToFloat64(counter))
		})
	}
}

func TestHandler_Export(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	ObserveHTTPRequest("/users", "GET", "200", 10*time.Millisecond)

	registry := prometheus.NewRegistry()
	registry.MustRegister(httpRequestsTotal)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	metricsHandler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/users",status_code="200"} 1`)
}

func TestHandler_DefaultRegistry(t *testing.T) {
	ObserveDBRequest("users.get", time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "db_requests_total")
}
