package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa as métricas Prometheus da sincronização e da API
type Metrics struct {
	// SyncRuns conta execuções de conta por escopo e resultado
	SyncRuns *prometheus.CounterVec
	// SyncDuration mede a duração de uma execução de conta
	SyncDuration *prometheus.HistogramVec
	// KindOutcomes conta resultados por tipo de estatística
	KindOutcomes *prometheus.CounterVec
	// RowsPersisted conta linhas criadas e atualizadas
	RowsPersisted *prometheus.CounterVec
	// RowsSkipped conta linhas descartadas por entidade pai desconhecida
	RowsSkipped *prometheus.CounterVec
	// ClickTypeCollisions conta chaves repetidas no relatório de tipos de clique
	ClickTypeCollisions *prometheus.CounterVec
	// FallbackAttempts conta tentativas por credencial e classificação do erro
	FallbackAttempts *prometheus.CounterVec
	// Retries conta novas tentativas locais da política de retry
	Retries *prometheus.CounterVec
	// CredentialChanges conta revogações, perdas de permissão e desativações
	CredentialChanges *prometheus.CounterVec
	// Alerts conta alertas emitidos por severidade
	Alerts *prometheus.CounterVec
	// AlertsSuppressed conta alertas descartados pela janela de deduplicação
	AlertsSuppressed prometheus.Counter
	// SyncsRunning indica quantas contas estão sendo sincronizadas
	SyncsRunning prometheus.Gauge
	// HTTPRequestsTotal conta requisições HTTP
	HTTPRequestsTotal *prometheus.CounterVec
	// RequestLatency mede a latência das requisições HTTP
	RequestLatency *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics cria e registra as métricas num registry próprio
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		SyncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_runs_total",
				Help:      "Total de execuções de sincronização de conta",
			},
			[]string{"scope", "result"},
		),
		SyncDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_duration_seconds",
				Help:      "Duração das execuções de sincronização de conta",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 3600},
			},
			[]string{"scope"},
		),
		KindOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_kind_outcomes_total",
				Help:      "Resultados por tipo de estatística",
			},
			[]string{"kind", "status"},
		),
		RowsPersisted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_rows_persisted_total",
				Help:      "Linhas de estatística criadas ou atualizadas",
			},
			[]string{"kind", "operation"},
		),
		RowsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_rows_skipped_total",
				Help:      "Linhas descartadas por entidade pai desconhecida",
			},
			[]string{"kind"},
		),
		ClickTypeCollisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_click_type_collisions_total",
				Help:      "Colisões de chave no relatório de tipos de clique",
			},
			[]string{"kind"},
		),
		FallbackAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_fallback_attempts_total",
				Help:      "Tentativas de credencial por classificação do resultado",
			},
			[]string{"result"},
		),
		Retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_retries_total",
				Help:      "Novas tentativas locais por classificação do erro",
			},
			[]string{"error_kind"},
		),
		CredentialChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_credential_changes_total",
				Help:      "Mudanças de estado de credenciais, permissões e contas",
			},
			[]string{"change"},
		),
		Alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_alerts_total",
				Help:      "Alertas emitidos",
			},
			[]string{"severity"},
		),
		AlertsSuppressed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_alerts_suppressed_total",
				Help:      "Alertas suprimidos pela janela de deduplicação",
			},
		),
		SyncsRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sync_running_accounts",
				Help:      "Contas em sincronização no momento",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP",
			},
			[]string{"endpoint", "method", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency_seconds",
				Help:      "Latência das requisições HTTP em segundos",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"endpoint", "method", "status"},
		),
	}

	registry.MustRegister(
		m.SyncRuns,
		m.SyncDuration,
		m.KindOutcomes,
		m.RowsPersisted,
		m.RowsSkipped,
		m.ClickTypeCollisions,
		m.FallbackAttempts,
		m.Retries,
		m.CredentialChanges,
		m.Alerts,
		m.AlertsSuppressed,
		m.SyncsRunning,
		m.HTTPRequestsTotal,
		m.RequestLatency,
	)

	return m
}

// Handler expõe as métricas no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSyncRun(scope, result string, durationSeconds float64) {
	m.SyncRuns.WithLabelValues(scope, result).Inc()
	m.SyncDuration.WithLabelValues(scope).Observe(durationSeconds)
}

func (m *Metrics) RecordKindOutcome(kind, status string) {
	m.KindOutcomes.WithLabelValues(kind, status).Inc()
}

// RecordRows registra criadas, atualizadas e descartadas de um tipo
func (m *Metrics) RecordRows(kind string, created, updated, skipped int) {
	m.RowsPersisted.WithLabelValues(kind, "create").Add(float64(created))
	m.RowsPersisted.WithLabelValues(kind, "update").Add(float64(updated))
	m.RowsSkipped.WithLabelValues(kind).Add(float64(skipped))
}

func (m *Metrics) RecordCollisions(kind string, count int) {
	if count > 0 {
		m.ClickTypeCollisions.WithLabelValues(kind).Add(float64(count))
	}
}

func (m *Metrics) RecordFallbackAttempt(result string) {
	m.FallbackAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordRetry(errorKind string) {
	m.Retries.WithLabelValues(errorKind).Inc()
}

func (m *Metrics) RecordCredentialChange(change string) {
	m.CredentialChanges.WithLabelValues(change).Inc()
}

func (m *Metrics) RecordAlert(severity string) {
	m.Alerts.WithLabelValues(severity).Inc()
}

func (m *Metrics) RecordAlertSuppressed() {
	m.AlertsSuppressed.Inc()
}

func (m *Metrics) IncSyncsRunning() {
	m.SyncsRunning.Inc()
}

func (m *Metrics) DecSyncsRunning() {
	m.SyncsRunning.Dec()
}

func (m *Metrics) RecordHTTPRequest(endpoint, method, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	m.RequestLatency.WithLabelValues(endpoint, method, status).Observe(durationSeconds)
}
