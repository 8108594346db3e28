package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	auth := authenticating.NewService(config.Auth{Secret: "segredo"})

	token := func(role int) string {
		value, err := auth.IssueToken("ops@empresa.com", role, time.Hour)
		require.NoError(t, err)
		return "Bearer " + value
	}

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "healthcheck sem token", path: "/healthcheck", status: http.StatusNoContent},
		{name: "métricas sem token", path: "/metrics", status: http.StatusNoContent},
		{name: "sem cabeçalho", path: "/v1/sync/status", status: http.StatusUnauthorized},
		{name: "sem prefixo Bearer", path: "/v1/sync/status", header: "abc", status: http.StatusUnauthorized},
		{name: "token adulterado", path: "/v1/sync/status", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
		{name: "supervisor sem permissão", path: "/v1/sync/status", header: token(RoleSupervisor), status: http.StatusForbidden},
		{name: "administrador", path: "/v1/sync/status", header: token(RoleAdmin), status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handler http.Handler = okHandler()
			if tt.path != "/healthcheck" && tt.path != "/metrics" {
				handler = AdminOnly()(handler)
			}
			handler = AuthMiddleware(auth)(handler)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRoleMiddlewareWithoutClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminOrSupervisor()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/sync/status", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
	req.Header.Set("Origin", "http://evil.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddlewareCorrelationID(t *testing.T) {
	log.SetupTestLogger()

	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
	req.Header.Set(CorrelationHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(CorrelationHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInstrument(t *testing.T) {
	m := metrics.NewMetrics("test")
	handler := Instrument(m, "/v1/accounts/:id/sync")(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/accounts/1/sync", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{endpoint="/v1/accounts/:id/sync",method="POST",status="204"} 1`)
}
