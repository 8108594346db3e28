package handler

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/scheduler"
)

// SyncService é a parte do agendador exposta pela API
type SyncService interface {
	TriggerManualSync(job scheduler.JobType) error
	SyncAccount(ctx context.Context, accountID string, scope domain.SyncScope) (*domain.AccountSyncReport, error)
	GetStatus() map[string]any
}

type Rewinder interface {
	Rewind(ctx context.Context, accountID string, kind domain.StatisticKind, from time.Time) (int64, error)
}

type CampaignLister interface {
	ListCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error)
}

// CredentialStore grava credenciais novas e as permissões informadas junto
type CredentialStore interface {
	SaveCredential(ctx context.Context, credential *domain.Credential) error
	UpsertPermissions(ctx context.Context, permissions []domain.Permission) (int, error)
}

// Pinger verifica a conexão com o banco no healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}
