package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/userapi/userapi/internal/metrics"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserCreated()
	recorder.IncUserCreated()
	recorder.IncEventPublished("dropped")

	h := NewMetricsHandler(recorder, func() int { return 2 })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected Content-Type: %s", ct)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"userapi_users_created_total 2",
		"userapi_users_deleted_total 0",
		`userapi_events_published_total{status="dropped"} 1`,
		"userapi_users_stored 2",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("expected %q in metrics output:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
