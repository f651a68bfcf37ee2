package handler

import (
	"fmt"
	"net/http"

	"github.com/userapi/userapi/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
	users       func() int
}

// NewMetricsHandler creates a new MetricsHandler. users reports the
// current store size and may be nil.
func NewMetricsHandler(snapshotter metrics.Snapshotter, users func() int) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter, users: users}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "userapi_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "userapi_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "userapi_users_deleted_total %d\n", snap.UsersDeleted)
	writeMetric(w, "userapi_user_not_found_total %d\n", snap.UserNotFound)
	writeMetric(w, "userapi_validation_failed_total %d\n", snap.ValidationFailed)

	writeMetric(w, "userapi_events_published_total{status=\"success\"} %d\n", snap.EventsPublished)
	writeMetric(w, "userapi_events_published_total{status=\"dropped\"} %d\n", snap.EventsDropped)

	if h.users != nil {
		writeMetric(w, "userapi_users_stored %d\n", h.users())
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
