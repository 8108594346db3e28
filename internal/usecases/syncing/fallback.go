package syncing

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/alerts"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

// ErrCredentialsExhausted sinaliza que nenhuma credencial da conta conseguiu executar a operação
var ErrCredentialsExhausted = errors.New("credentials exhausted")

type FallbackStatus string

const (
	FallbackSucceeded         FallbackStatus = "succeeded"
	FallbackExhausted         FallbackStatus = "exhausted"
	FallbackAccountInactive   FallbackStatus = "account_inactive"
	FallbackKindSkipped       FallbackStatus = "kind_skipped"
	FallbackPersistenceFailed FallbackStatus = "persistence_failed"
)

// SyncOperation é a unidade executada com o cliente de uma credencial
type SyncOperation func(ctx context.Context, client ReportClient) error

type FallbackResult struct {
	Status       FallbackStatus
	CredentialID string
	PermissionID string
	Attempts     int
	Err          error
}

// CredentialFallbackRunner tenta as credenciais da conta em ordem até uma funcionar.
// É o único ponto que transforma erros em mudanças de estado de credencial, permissão e conta.
type CredentialFallbackRunner struct {
	credentials repository.CredentialRepository
	accounts    repository.AccountRepository
	factory     ReportClientFactory
	retry       *RetryPolicy
	alerter     Alerter
	clock       Clock
	metrics     *metrics.Metrics
}

func NewCredentialFallbackRunner(
	credentials repository.CredentialRepository,
	accounts repository.AccountRepository,
	factory ReportClientFactory,
	retry *RetryPolicy,
	alerter Alerter,
	m *metrics.Metrics,
) *CredentialFallbackRunner {
	return &CredentialFallbackRunner{
		credentials: credentials,
		accounts:    accounts,
		factory:     factory,
		retry:       retry,
		alerter:     alerter,
		clock:       systemClock{},
		metrics:     m,
	}
}

func (r *CredentialFallbackRunner) WithClock(clock Clock) *CredentialFallbackRunner {
	r.clock = clock
	return r
}

// Run só retorna erro para cancelamento, falha ao listar candidatos ou ErrCredentialsExhausted
func (r *CredentialFallbackRunner) Run(ctx context.Context, account *domain.Account, label string, op SyncOperation) (*FallbackResult, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"kind":       label,
	})

	candidates, err := r.credentials.Candidates(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credenciais da conta %s: %w", account.ID, err)
	}

	result := &FallbackResult{}
	for _, candidate := range candidates {
		result.Attempts++
		result.CredentialID = candidate.Credential.ID
		result.PermissionID = candidate.Permission.ID

		candidateLogger := logger.WithFields(log.Fields{
			"credential_id": candidate.Credential.ID,
			"permission_id": candidate.Permission.ID,
		})

		err := r.attempt(ctx, account, candidate, op)
		if err == nil {
			if markErr := r.credentials.MarkSuccess(ctx, candidate.Permission.ID, r.clock.Now()); markErr != nil {
				candidateLogger.WithError(markErr).Warn("Erro ao registrar sucesso da permissão")
			}
			r.recordAttempt("success")
			result.Status = FallbackSucceeded
			result.Err = nil
			return result, nil
		}

		result.Err = err
		if domain.IsCanceled(err) || ctx.Err() != nil {
			return result, err
		}

		if errors.Is(err, domain.ErrIntegrityViolation) {
			r.recordAttempt("persistence_failed")
			candidateLogger.WithError(err).Error("Falha de integridade ao gravar estatísticas")
			r.notify(ctx, account.ID, alerts.SeverityCritical, fmt.Sprintf("falha de integridade ao gravar %s", label))
			result.Status = FallbackPersistenceFailed
			return result, nil
		}

		kind := domain.ClassifyError(err)
		candidateLogger = candidateLogger.WithField("error_kind", kind).WithError(err)
		r.recordAttempt(string(kind))

		switch kind {
		case domain.ErrorKindTokenRevoked:
			candidateLogger.Warn("Credencial expirada ou revogada")
			if err := r.credentials.RevokeCredential(ctx, candidate.Credential.ID); err != nil {
				candidateLogger.WithError(err).Error("Erro ao revogar credencial")
			} else {
				r.recordCredentialChange("revoked")
			}

		case domain.ErrorKindPermissionDenied:
			candidateLogger.Warn("Permissão de leitura negada")
			if err := r.credentials.DenyRead(ctx, candidate.Permission.ID); err != nil {
				candidateLogger.WithError(err).Error("Erro ao remover permissão de leitura")
			} else {
				r.recordCredentialChange("read_denied")
			}

		case domain.ErrorKindAccountInactive:
			candidateLogger.Warn("Conta inativa na plataforma, desativando")
			if err := r.accounts.Deactivate(ctx, account.ID); err != nil {
				candidateLogger.WithError(err).Error("Erro ao desativar conta")
			} else {
				r.recordCredentialChange("account_deactivated")
			}
			result.Status = FallbackAccountInactive
			return result, nil

		case domain.ErrorKindReportTypeMismatch:
			candidateLogger.Warn("Relatório incompatível com a conta, tipo ignorado")
			result.Status = FallbackKindSkipped
			return result, nil

		case domain.ErrorKindUnknown:
			candidateLogger.Error("Erro desconhecido ao sincronizar, tentando próxima credencial")
			r.notify(ctx, account.ID, alerts.SeverityCritical, fmt.Sprintf("erro desconhecido ao sincronizar %s (%s)", label, kind))

		default:
			candidateLogger.Warn("Falha com a credencial, tentando a próxima")
		}
	}

	logger.WithField("attempt", result.Attempts).Error("Nenhuma credencial conseguiu sincronizar a conta")
	r.notify(ctx, account.ID, alerts.SeverityWarning, fmt.Sprintf("credenciais esgotadas ao sincronizar %s", label))
	result.Status = FallbackExhausted

	return result, ErrCredentialsExhausted
}

// attempt usa um cliente novo por credencial, nunca compartilhado entre tentativas
func (r *CredentialFallbackRunner) attempt(ctx context.Context, account *domain.Account, candidate domain.CredentialCandidate, op SyncOperation) error {
	client, err := r.factory.NewClient(ctx, candidate.Credential, account.LoginCustomerID())
	if err != nil {
		return err
	}

	return r.retry.Run(ctx, func(ctx context.Context) error {
		return op(ctx, client)
	})
}

func (r *CredentialFallbackRunner) notify(ctx context.Context, accountID string, severity alerts.Severity, message string) {
	if r.alerter == nil {
		return
	}
	r.alerter.Notify(ctx, accountID, severity, message)
}

func (r *CredentialFallbackRunner) recordAttempt(result string) {
	if r.metrics != nil {
		r.metrics.RecordFallbackAttempt(result)
	}
}

func (r *CredentialFallbackRunner) recordCredentialChange(change string) {
	if r.metrics != nil {
		r.metrics.RecordCredentialChange(change)
	}
}
