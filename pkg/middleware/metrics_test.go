package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// serveWithChi wraps a handler in a chi router so RouteContext is available.
func serveWithChi(mw func(http.Handler) http.Handler, pattern string, handler http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get(pattern, handler.ServeHTTP)
	return r
}

func TestPrometheusMetrics_CountsByRoutePattern(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("count-svc"), "/products/{id}",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for _, id := range []string{"1", "2", "3"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("count-svc", "GET", "/products/{id}", "200"))
	assert.Equal(t, float64(3), got)
}

func TestPrometheusMetrics_DurationHistogram(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("hist-svc"), "/test",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestDuration.MustCurryWith(map[string]string{"service": "hist-svc"})))
}

func TestPrometheusMetrics_InFlightGauge(t *testing.T) {
	seen := float64(-1)
	handler := serveWithChi(PrometheusMetrics("inflight-svc"), "/test",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = testutil.ToFloat64(httpRequestsInFlight.WithLabelValues("inflight-svc"))
			w.WriteHeader(http.StatusOK)
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, float64(1), seen)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight.WithLabelValues("inflight-svc")))
}

func TestPrometheusMetrics_StatusCodeCapture(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		label      string
	}{
		{"ok", http.StatusOK, "200"},
		{"unprocessable", http.StatusUnprocessableEntity, "422"},
		{"server error", http.StatusInternalServerError, "500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := "status-" + tc.label
			handler := serveWithChi(PrometheusMetrics(svc), "/test",
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.statusCode)
				}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, tc.statusCode, rr.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues(svc, "GET", "/test", tc.label)))
		})
	}
}

func TestPrometheusMetrics_DefaultStatusCode(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("default-status-svc"), "/test",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("default-status-svc", "GET", "/test", "200")))
}

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (m *flushRecorder) Flush() { m.flushed = true }

type hijackRecorder struct {
	http.ResponseWriter
	hijacked bool
}

func (m *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	m.hijacked = true
	return nil, nil, nil
}

// bareWriter implements neither http.Flusher nor http.Hijacker.
type bareWriter struct {
	header http.Header
}

func (m *bareWriter) Header() http.Header {
	if m.header == nil {
		m.header = make(http.Header)
	}
	return m.header
}

func (m *bareWriter) Write(b []byte) (int, error) { return len(b), nil }

func (m *bareWriter) WriteHeader(int) {}

func TestMetricsResponseWriter_Flush(t *testing.T) {
	under := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	rw := &metricsResponseWriter{ResponseWriter: under, statusCode: http.StatusOK}
	rw.Flush()
	assert.True(t, under.flushed)

	bare := &metricsResponseWriter{ResponseWriter: &bareWriter{}, statusCode: http.StatusOK}
	assert.NotPanics(t, bare.Flush)
}

func TestMetricsResponseWriter_Hijack(t *testing.T) {
	under := &hijackRecorder{ResponseWriter: httptest.NewRecorder()}
	rw := &metricsResponseWriter{ResponseWriter: under, statusCode: http.StatusOK}
	_, _, err := rw.Hijack()
	assert.NoError(t, err)
	assert.True(t, under.hijacked)

	bare := &metricsResponseWriter{ResponseWriter: &bareWriter{}, statusCode: http.StatusOK}
	_, _, err = bare.Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}
