package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_RecordsRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/listar_encomendas", func(c echo.Context) error {
		return c.String(http.StatusOK, "[]")
	})

	req := httptest.NewRequest(http.MethodGet, "/listar_encomendas", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/listar_encomendas", "200"))
	assert.Equal(t, 1.0, got)
}

func TestMetricsMiddleware_RecordsErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/boom", "404"))
	assert.Equal(t, 1.0, got)
}

func TestMetricsMiddleware_UnmatchedRouteUsesRawPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	e := echo.New()
	e.Use(m.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
