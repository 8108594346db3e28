package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordingAndHandler(t *testing.T) {
	m := NewMetrics("test")

	m.RecordSyncRun("full", "completed", 12.5)
	m.RecordKindOutcome("campaign", "synced")
	m.RecordRows("campaign", 10, 3, 1)
	m.RecordCollisions("gender", 2)
	m.RecordCollisions("gender", 0)
	m.RecordFallbackAttempt("succeeded")
	m.RecordRetry("transient_server_error")
	m.RecordCredentialChange("revoked")
	m.RecordAlert("warning")
	m.RecordAlertSuppressed()
	m.IncSyncsRunning()
	m.DecSyncsRunning()
	m.RecordHTTPRequest("/healthcheck", http.MethodGet, "200", 0.01)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.RowsPersisted.WithLabelValues("campaign", "create")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RowsPersisted.WithLabelValues("campaign", "update")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClickTypeCollisions.WithLabelValues("gender")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsSuppressed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SyncsRunning))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_sync_runs_total")
	assert.Contains(t, w.Body.String(), "test_sync_click_type_collisions_total")
}
