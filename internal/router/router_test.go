package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/weapub/sj-calculadora/internal/config"
	"github.com/weapub/sj-calculadora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{Env: "test", RateLimitPerMinute: 1000, CORSAllowedOrigins: "*"}
}

func engine(cfg *config.Config, db pinger) *gin.Engine {
	// Handlers are never reached by these tests, so nil services are fine.
	return NewWithServices(cfg, Services{
		Proveedores: service.ProveedorService(nil),
		Productos:   service.ProductoService(nil),
		Exportacion: service.ExportacionService(nil),
		DB:          db,
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_RootAndRequestID(t *testing.T) {
	r := engine(testConfig(), pinger{})

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API Calculadora en funcionamiento", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(engine(testConfig(), pinger{}), "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		get(engine(testConfig(), pinger{err: errors.New("down")}), "/health").Code)
}

func TestRouter_MetricsExposeRequests(t *testing.T) {
	r := engine(testConfig(), pinger{})
	require.Equal(t, http.StatusOK, get(r, "/").Code)

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `calculadora_http_requests_total{method="GET",path="/",status="200"}`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(engine(testConfig(), pinger{}), "/ventas").Code)
}

func TestRouter_RateLimitFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	r := engine(cfg, pinger{})

	assert.Equal(t, http.StatusOK, get(r, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/").Code)
}
