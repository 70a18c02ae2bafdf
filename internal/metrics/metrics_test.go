package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest_IncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/proveedores", "200"))

	ObserveRequest("GET", "/proveedores", 200, 15*time.Millisecond)
	ObserveRequest("GET", "/proveedores", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/proveedores", "200"))
	assert.Equal(t, before+2, after)
}

func TestTrackDBOperation_ObservesDuration(t *testing.T) {
	TrackDBOperation("test.op")(time.Now().Add(-10 * time.Millisecond))

	assert.Equal(t, 1, testutil.CollectAndCount(DBOperationDuration, "calculadora_db_operation_duration_seconds"))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveRequest("POST", "/productos", 201, time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "calculadora_http_requests_total")
}
