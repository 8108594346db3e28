package syncing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

// ErrUnknownKind é retornado quando o tipo de estatística não está no registro
var ErrUnknownKind = errors.New("tipo de estatística desconhecido")

// AccountSyncOrchestrator percorre os tipos de estatística de uma conta, um de cada vez
type AccountSyncOrchestrator struct {
	accounts    repository.AccountRepository
	credentials repository.CredentialRepository
	entities    repository.EntityRepository
	stats       repository.StatisticRepository
	syncer      KindSyncer
	hourly      HourlyStatisticsSyncer
	fallback    FallbackRunner
	kinds       []KindSpec
	clock       Clock
	metrics     *metrics.Metrics
}

func NewAccountSyncOrchestrator(
	accounts repository.AccountRepository,
	credentials repository.CredentialRepository,
	entities repository.EntityRepository,
	stats repository.StatisticRepository,
	syncer KindSyncer,
	hourly HourlyStatisticsSyncer,
	fallback FallbackRunner,
	m *metrics.Metrics,
) *AccountSyncOrchestrator {
	return &AccountSyncOrchestrator{
		accounts:    accounts,
		credentials: credentials,
		entities:    entities,
		stats:       stats,
		syncer:      syncer,
		hourly:      hourly,
		fallback:    fallback,
		kinds:       DefaultKinds(),
		clock:       systemClock{},
		metrics:     m,
	}
}

// WithKinds troca a lista ordenada de tipos da sincronização completa
func (o *AccountSyncOrchestrator) WithKinds(kinds []KindSpec) *AccountSyncOrchestrator {
	o.kinds = kinds
	return o
}

func (o *AccountSyncOrchestrator) WithClock(clock Clock) *AccountSyncOrchestrator {
	o.clock = clock
	return o
}

// SyncAccount carrega a conta e executa o escopo pedido
func (o *AccountSyncOrchestrator) SyncAccount(ctx context.Context, accountID string, scope domain.SyncScope) (*domain.AccountSyncReport, error) {
	account, err := o.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("conta %s: %w", accountID, domain.ErrAccountInactive)
	}

	switch scope {
	case domain.SyncScopeFull:
		return o.FullSync(ctx, account)
	case domain.SyncScopeHourly:
		return o.CampaignsOnlySync(ctx, account)
	}
	return nil, fmt.Errorf("escopo de sincronização inválido: %s", scope)
}

// FullSync roda todos os tipos em ordem, recalcula os agregados e carimba a conta.
// O carimbo só acontece se nenhum tipo esgotou as credenciais ou falhou ao gravar.
func (o *AccountSyncOrchestrator) FullSync(ctx context.Context, account *domain.Account) (*domain.AccountSyncReport, error) {
	report := o.newReport(account, domain.SyncScopeFull)
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"scope":      domain.SyncScopeFull,
	})
	logger.Info("Iniciando sincronização completa")

	for _, spec := range o.kinds {
		spec := spec
		var outcome *domain.SyncOutcome

		result, err := o.fallback.Run(ctx, account, string(spec.Kind), func(ctx context.Context, client ReportClient) error {
			var err error
			outcome, err = o.syncer.Sync(ctx, spec, account, client)
			return err
		})

		if stop, err := o.collect(ctx, report, spec.Kind, result, outcome, err); stop {
			return o.finish(ctx, report, err)
		}
	}

	if !report.AccountInactive && len(report.Outcomes) > 0 {
		if err := o.entities.RecalculateDenormalizedFields(ctx, account.ID); err != nil {
			logger.WithError(err).Error("Erro ao recalcular agregados da conta")
			return o.finish(ctx, report, err)
		}
	}

	if report.Completed() {
		if err := o.accounts.StampFullSync(ctx, account.ID, o.clock.Now()); err != nil {
			return o.finish(ctx, report, err)
		}
		report.Stamped = true
	}

	return o.finish(ctx, report, nil)
}

// CampaignsOnlySync é o caminho frequente: só campanhas e a estatística por hora
func (o *AccountSyncOrchestrator) CampaignsOnlySync(ctx context.Context, account *domain.Account) (*domain.AccountSyncReport, error) {
	report := o.newReport(account, domain.SyncScopeHourly)
	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"scope":      domain.SyncScopeHourly,
	}).Info("Iniciando sincronização de campanhas")

	campaign := CampaignKind()
	var outcome *domain.SyncOutcome
	result, err := o.fallback.Run(ctx, account, string(campaign.Kind), func(ctx context.Context, client ReportClient) error {
		var err error
		outcome, err = o.syncer.Sync(ctx, campaign, account, client)
		return err
	})
	if stop, err := o.collect(ctx, report, campaign.Kind, result, outcome, err); stop {
		return o.finish(ctx, report, err)
	}

	outcome = nil
	result, err = o.fallback.Run(ctx, account, string(domain.KindCampaignHourly), func(ctx context.Context, client ReportClient) error {
		var err error
		outcome, err = o.hourly.Sync(ctx, account, client)
		return err
	})
	if stop, err := o.collect(ctx, report, domain.KindCampaignHourly, result, outcome, err); stop {
		return o.finish(ctx, report, err)
	}

	if report.Completed() {
		if err := o.accounts.StampHourlySync(ctx, account.ID, o.clock.Now()); err != nil {
			return o.finish(ctx, report, err)
		}
		report.Stamped = true
	}

	return o.finish(ctx, report, nil)
}

// collect registra o resultado de um tipo no relatório; stop interrompe a conta
func (o *AccountSyncOrchestrator) collect(
	ctx context.Context,
	report *domain.AccountSyncReport,
	kind domain.StatisticKind,
	result *FallbackResult,
	outcome *domain.SyncOutcome,
	err error,
) (bool, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": report.AccountID,
		"kind":       kind,
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsExhausted):
			report.ExhaustedKinds = append(report.ExhaustedKinds, kind)
			o.recordKind(kind, string(FallbackExhausted))
			return false, nil
		case domain.IsCanceled(err) || ctx.Err() != nil:
			return true, err
		default:
			logger.WithError(err).Error("Erro ao executar tipo de estatística")
			report.FailedKinds = append(report.FailedKinds, kind)
			o.recordKind(kind, "failed")
			return false, nil
		}
	}

	o.recordKind(kind, string(result.Status))

	switch result.Status {
	case FallbackSucceeded:
		if outcome == nil {
			outcome = domain.NoOpOutcome(kind)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	case FallbackAccountInactive:
		report.AccountInactive = true
		return true, nil
	case FallbackKindSkipped:
		report.SkippedKinds = append(report.SkippedKinds, kind)
	case FallbackPersistenceFailed:
		report.FailedKinds = append(report.FailedKinds, kind)
	}

	return false, nil
}

func (o *AccountSyncOrchestrator) newReport(account *domain.Account, scope domain.SyncScope) *domain.AccountSyncReport {
	return &domain.AccountSyncReport{
		AccountID: account.ID,
		Scope:     scope,
		StartedAt: o.clock.Now(),
	}
}

func (o *AccountSyncOrchestrator) finish(ctx context.Context, report *domain.AccountSyncReport, err error) (*domain.AccountSyncReport, error) {
	report.FinishedAt = o.clock.Now()

	result := "completed"
	switch {
	case err != nil:
		result = "error"
	case report.AccountInactive:
		result = "account_inactive"
	case !report.Completed():
		result = "partial"
	}

	if o.metrics != nil {
		o.metrics.RecordSyncRun(string(report.Scope), result, report.FinishedAt.Sub(report.StartedAt).Seconds())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":      report.AccountID,
		"scope":           report.Scope,
		"sync_result":     result,
		"sync_kinds":      len(report.Outcomes),
		"sync_exhausted":  len(report.ExhaustedKinds),
		"sync_failed":     len(report.FailedKinds),
		"sync_skipped":    len(report.SkippedKinds),
		"sync_stamped":    report.Stamped,
		"sync_duration_s": report.FinishedAt.Sub(report.StartedAt).Seconds(),
	}).Info("Sincronização da conta finalizada")

	return report, err
}

func (o *AccountSyncOrchestrator) recordKind(kind domain.StatisticKind, status string) {
	if o.metrics != nil {
		o.metrics.RecordKindOutcome(string(kind), status)
	}
}

// MCCAccountDiscovery lista as contas finais sob a gerenciadora e cria as contas e
// permissões que faltam. Não busca estatísticas.
func (o *AccountSyncOrchestrator) MCCAccountDiscovery(ctx context.Context, manager *domain.Account) (*domain.DiscoveryReport, error) {
	logger := log.ForContext(ctx).WithField("manager_id", manager.ID)
	report := &domain.DiscoveryReport{ManagerID: manager.ID, Created: []string{}}

	var clients []domain.CustomerClient
	result, err := o.fallback.Run(ctx, manager, "discovery", func(ctx context.Context, client ReportClient) error {
		var err error
		clients, err = client.ListCustomerClients(ctx, manager.ID)
		return err
	})
	if err != nil {
		return report, err
	}
	if result.Status != FallbackSucceeded {
		logger.WithField("sync_status", result.Status).Warn("Descoberta de contas não concluída")
		return report, nil
	}

	accounts := make([]domain.Account, 0, len(clients))
	for _, client := range clients {
		if client.IsManager || client.Hidden || client.ID == manager.ID {
			continue
		}
		accounts = append(accounts, client.ToAccount(manager.ID))
	}
	report.Visible = len(accounts)

	if len(accounts) == 0 {
		return report, nil
	}

	created, err := o.accounts.UpsertDiscovered(ctx, accounts)
	if err != nil {
		return report, err
	}
	report.Created = created

	// a credencial que enxergou as contas passa a poder lê-las
	permissions := make([]domain.Permission, 0, len(accounts))
	for _, account := range accounts {
		id, err := utils.GenerateID()
		if err != nil {
			return report, err
		}
		permissions = append(permissions, domain.Permission{
			ID:           id,
			CredentialID: result.CredentialID,
			AccountID:    account.ID,
			CanRead:      true,
		})
	}

	inserted, err := o.credentials.UpsertPermissions(ctx, permissions)
	if err != nil {
		return report, err
	}
	report.Permissions = inserted

	logger.WithFields(log.Fields{
		"sync_visible":     report.Visible,
		"sync_created":     len(report.Created),
		"sync_permissions": report.Permissions,
	}).Info("Descoberta de contas concluída")

	return report, nil
}

// Rewind apaga as estatísticas do tipo a partir de from, forçando a próxima sincronização a buscá-las de novo
func (o *AccountSyncOrchestrator) Rewind(ctx context.Context, accountID string, kind domain.StatisticKind, from time.Time) (int64, error) {
	account, err := o.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, domain.ErrAccountNotFound
	}
	if _, ok := KindByName(kind); !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	today := utils.TodayIn(o.clock.Now(), account.Location())
	from = domain.DateOf(from)
	if from.After(today) {
		return 0, nil
	}

	removed, err := o.stats.DeleteRange(ctx, accountID, kind, from, today)
	if err != nil {
		return 0, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":   accountID,
		"kind":         kind,
		"fetch_from":   from.Format(time.DateOnly),
		"sync_removed": removed,
	}).Info("Estatísticas removidas para nova busca")

	return removed, nil
}
