package alerts

import (
	"context"
	"fmt"

	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Notifier emite alertas operacionais limitados por conta e mensagem
type Notifier struct {
	dedup   *DedupStore
	metrics *metrics.Metrics
}

func NewNotifier(dedup *DedupStore, m *metrics.Metrics) *Notifier {
	return &Notifier{
		dedup:   dedup,
		metrics: m,
	}
}

// Notify retorna false quando o alerta foi suprimido pela janela de deduplicação
func (n *Notifier) Notify(ctx context.Context, accountID string, severity Severity, message string) bool {
	key := fmt.Sprintf("%s:%s", accountID, message)

	if !n.dedup.Allow(key) {
		n.metrics.RecordAlertSuppressed()
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": accountID,
		}).Debugf("Alerta suprimido: %s", message)
		return false
	}

	n.metrics.RecordAlert(string(severity))
	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":     accountID,
		"sync_severity":  severity,
		"sync_alert_key": key,
	}).Error(message)

	return true
}

// Cleanup descarta registros antigos da deduplicação
func (n *Notifier) Cleanup() {
	n.dedup.Cleanup()
}
