package scheduler

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

import (
	"context"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// AccountSyncer é a parte do orquestrador usada pelo agendador
type AccountSyncer interface {
	FullSync(ctx context.Context, account *domain.Account) (*domain.AccountSyncReport, error)
	CampaignsOnlySync(ctx context.Context, account *domain.Account) (*domain.AccountSyncReport, error)
	SyncAccount(ctx context.Context, accountID string, scope domain.SyncScope) (*domain.AccountSyncReport, error)
	MCCAccountDiscovery(ctx context.Context, manager *domain.Account) (*domain.DiscoveryReport, error)
}

type PermissionProber interface {
	Run(ctx context.Context) (*domain.ProbeReport, error)
}
