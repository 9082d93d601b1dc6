package pkgmetrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg)

	h := m.Middleware(func(*http.Request) string { return "/upload" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}),
	)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodPost, "/upload", "400"))
	if got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg)
	m.Requests.WithLabelValues(http.MethodGet, "/data", "200").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "csvjson_http_requests_total") {
		t.Fatalf("expected request counter in exposition, got %s", body)
	}
}
