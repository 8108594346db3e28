package syncing

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/alerts"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// RowIterator percorre as linhas de um relatório sob demanda, página a página
type RowIterator interface {
	Next(ctx context.Context) bool
	Row() domain.Row
	// Err retorna o erro que interrompeu a iteração, já classificado
	Err() error
	Close() error
}

// ReportClient acessa a API de relatórios com uma credencial
type ReportClient interface {
	// Fetch executa um relatório; DateRange nil busca todo o período
	Fetch(ctx context.Context, req domain.ReportRequest) (RowIterator, error)
	// ListAccessibleCustomers lista as contas acessíveis diretamente pela credencial
	ListAccessibleCustomers(ctx context.Context) ([]string, error)
	// ListCustomerClients lista as contas visíveis sob uma gerenciadora
	ListCustomerClients(ctx context.Context, managerID string) ([]domain.CustomerClient, error)
}

// ReportClientFactory cria um cliente novo a cada tentativa de credencial
type ReportClientFactory interface {
	NewClient(ctx context.Context, credential domain.Credential, loginCustomerID string) (ReportClient, error)
}

// Alerter emite alertas operacionais deduplicados
type Alerter interface {
	Notify(ctx context.Context, accountID string, severity alerts.Severity, message string) bool
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// KindSyncer sincroniza um tipo de estatística com um cliente já autenticado
type KindSyncer interface {
	Sync(ctx context.Context, spec KindSpec, account *domain.Account, client ReportClient) (*domain.SyncOutcome, error)
}

// HourlyStatisticsSyncer recria as estatísticas por hora das campanhas
type HourlyStatisticsSyncer interface {
	Sync(ctx context.Context, account *domain.Account, client ReportClient) (*domain.SyncOutcome, error)
}

// FallbackRunner executa a operação com as credenciais da conta, em ordem
type FallbackRunner interface {
	Run(ctx context.Context, account *domain.Account, label string, op SyncOperation) (*FallbackResult, error)
}
