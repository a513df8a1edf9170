package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task_manager/internal/logger"
	"task_manager/internal/service"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRootBanner(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || w.Body.String() != "API is running..." {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"db up", nil, http.StatusOK},
		{"db down", errors.New("unreachable"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Health: &mockHealth{err: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{BasePath: "/api", AllowedOrigins: []string{"http://localhost:3000"}})
	r := h.InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow-origin=%q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(&service.Service{})

	// generate one observation
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "taskmanager_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestRequestLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	r := NewHandler(&service.Service{}, log, Options{BasePath: "/api"}).InitRoutes()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodGet || fields["path"] != "/" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("status field = %v (%T)", fields["status"], fields["status"])
	}
}
