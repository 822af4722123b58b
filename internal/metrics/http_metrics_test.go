package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/category/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fine"))
	})

	for _, path := range []string{"/api/category/1", "/api/category/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/category/{id}", "404")); got != 2 {
		t.Fatalf("404 count = %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ok", "200")); got != 1 {
		t.Fatalf("200 count = %v", got)
	}
	if got := testutil.ToFloat64(m.status.WithLabelValues("4xx")); got != 2 {
		t.Fatalf("4xx count = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())
	m.requests.WithLabelValues("GET", "/", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("http_requests_total missing from output")
	}
}
