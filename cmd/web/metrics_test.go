package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMeasureRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	app := &application{metrics: newMetrics(registry)}

	handler := app.measureRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/books/999", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 passed through", rr.Code)
	}

	got := testutil.ToFloat64(app.metrics.requestsTotal.WithLabelValues("GET", "404"))
	if got != 1 {
		t.Errorf("requests_total{GET,404} = %v, want 1", got)
	}
}

func TestMeasureRequestsSkipsAssets(t *testing.T) {
	registry := prometheus.NewRegistry()
	app := &application{metrics: newMetrics(registry)}

	handler := app.measureRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/static/css/main.css", nil))

	got := testutil.ToFloat64(app.metrics.requestsTotal.WithLabelValues("GET", "200"))
	if got != 0 {
		t.Errorf("asset requests should not be counted, got %v", got)
	}
}

func TestStatusRecorderDefaultsTo200(t *testing.T) {
	registry := prometheus.NewRegistry()
	app := &application{metrics: newMetrics(registry)}

	// A handler that writes a body without calling WriteHeader.
	handler := app.measureRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	got := testutil.ToFloat64(app.metrics.requestsTotal.WithLabelValues("GET", "200"))
	if got != 1 {
		t.Errorf("requests_total{GET,200} = %v, want 1", got)
	}
}
