package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
)

// Instrument registra contagem e latência da rota; endpoint é o padrão da rota,
// não o caminho com IDs
func Instrument(m *metrics.Metrics, endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			m.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(lrw.statusCode), time.Since(start).Seconds())
		})
	}
}
