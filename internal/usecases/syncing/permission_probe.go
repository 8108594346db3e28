package syncing

import (
	"context"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

// PermissionProbe devolve a leitura a permissões marcadas como negadas quando a
// credencial volta a enxergar a conta. Nunca roda dentro de uma sincronização.
type PermissionProbe struct {
	credentials repository.CredentialRepository
	accounts    repository.AccountRepository
	factory     ReportClientFactory
	metrics     *metrics.Metrics
}

func NewPermissionProbe(
	credentials repository.CredentialRepository,
	accounts repository.AccountRepository,
	factory ReportClientFactory,
	m *metrics.Metrics,
) *PermissionProbe {
	return &PermissionProbe{
		credentials: credentials,
		accounts:    accounts,
		factory:     factory,
		metrics:     m,
	}
}

func (p *PermissionProbe) Run(ctx context.Context) (*domain.ProbeReport, error) {
	candidates, err := p.credentials.ListUnreadable(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.ProbeReport{}
	deactivated := make(map[string]bool)

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		accountID := candidate.Permission.AccountID
		if deactivated[accountID] {
			continue
		}
		report.Checked++

		logger := log.ForContext(ctx).WithFields(log.Fields{
			"account_id":    accountID,
			"credential_id": candidate.Credential.ID,
			"permission_id": candidate.Permission.ID,
		})

		account, err := p.accounts.GetAccount(ctx, accountID)
		if err != nil || account == nil {
			logger.WithError(err).Warn("Conta da permissão não encontrada")
			report.Failed++
			continue
		}

		err = p.probe(ctx, account, candidate.Credential)
		switch kind := domain.ClassifyError(err); {
		case err == nil:
			if err := p.credentials.GrantRead(ctx, candidate.Permission.ID); err != nil {
				logger.WithError(err).Error("Erro ao restaurar permissão de leitura")
				report.Failed++
				continue
			}
			logger.Info("Permissão de leitura restaurada")
			p.recordChange("read_granted")
			report.Healed++

		case kind == domain.ErrorKindAccountInactive:
			if err := p.accounts.Deactivate(ctx, accountID); err != nil {
				logger.WithError(err).Error("Erro ao desativar conta")
				report.Failed++
				continue
			}
			logger.Warn("Conta inativa na plataforma, desativada")
			p.recordChange("account_deactivated")
			deactivated[accountID] = true
			report.Deactivated++

		default:
			logger.WithField("error_kind", kind).WithError(err).Debug("Permissão continua sem leitura")
			report.Failed++
		}
	}

	return report, nil
}

// probe lê a própria conta com um cliente novo da credencial
func (p *PermissionProbe) probe(ctx context.Context, account *domain.Account, credential domain.Credential) error {
	client, err := p.factory.NewClient(ctx, credential, account.LoginCustomerID())
	if err != nil {
		return err
	}

	iter, err := client.Fetch(ctx, domain.ReportRequest{
		AccountID: account.ID,
		Resource:  "customer",
		Fields:    []string{"customer.id"},
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	// basta a primeira página
	iter.Next(ctx)
	return iter.Err()
}

func (p *PermissionProbe) recordChange(change string) {
	if p.metrics != nil {
		p.metrics.RecordCredentialChange(change)
	}
}
