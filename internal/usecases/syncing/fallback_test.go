package syncing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/traffic-stats-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-stats-sync/internal/alerts"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func noSleep(context.Context, time.Duration) error {
	return nil
}

func candidate(n int) domain.CredentialCandidate {
	return domain.CredentialCandidate{
		Permission: domain.Permission{
			ID:           fmt.Sprintf("P%d", n),
			CredentialID: fmt.Sprintf("C%d", n),
			AccountID:    "123",
			CanRead:      true,
		},
		Credential: domain.Credential{
			ID:           fmt.Sprintf("C%d", n),
			Email:        fmt.Sprintf("user%d@example.com", n),
			RefreshToken: fmt.Sprintf("token-%d", n),
		},
	}
}

type fallbackMocks struct {
	credentials *repomocks.MockCredentialRepository
	accounts    *repomocks.MockAccountRepository
	factory     *mocks.MockReportClientFactory
	alerter     *mocks.MockAlerter
	clients     []*mocks.MockReportClient
}

// expectClients faz a fábrica devolver clients[i] para a credencial do candidato i+1
func (m fallbackMocks) expectClients(n int) {
	for i := 0; i < n; i++ {
		m.factory.EXPECT().
			NewClient(gomock.Any(), candidate(i+1).Credential, "123").
			Return(m.clients[i], nil)
	}
}

func TestCredentialFallbackRunnerRun(t *testing.T) {
	now := time.Date(2020, 3, 10, 12, 0, 0, 0, time.UTC)
	three := []domain.CredentialCandidate{candidate(1), candidate(2), candidate(3)}

	tests := []struct {
		name string
		// errs[i] é o erro devolvido pela operação com o cliente da credencial i+1
		errs     []error
		setup    func(m fallbackMocks)
		validate func(t *testing.T, result *syncing.FallbackResult, err error, calls []int)
	}{
		{
			name: "primeira permissão negada e segunda credencial funciona",
			errs: []error{domain.NewSyncError(domain.ErrorKindPermissionDenied, "USER_PERMISSION_DENIED", "", nil), nil},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(2)
				m.credentials.EXPECT().DenyRead(gomock.Any(), "P1").Return(nil)
				m.credentials.EXPECT().MarkSuccess(gomock.Any(), "P2", now).Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackSucceeded, result.Status)
				assert.Equal(t, "C2", result.CredentialID)
				assert.Equal(t, 2, result.Attempts)
				assert.Equal(t, []int{1, 1, 0}, calls)
			},
		},
		{
			name: "token revogado revoga a credencial e segue para a próxima",
			errs: []error{domain.NewSyncError(domain.ErrorKindTokenRevoked, "invalid_grant", "", nil), nil},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(2)
				m.credentials.EXPECT().RevokeCredential(gomock.Any(), "C1").Return(nil)
				m.credentials.EXPECT().MarkSuccess(gomock.Any(), "P2", now).Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackSucceeded, result.Status)
				assert.Equal(t, []int{1, 1, 0}, calls)
			},
		},
		{
			name: "conta inativa desativa a conta e não tenta outras credenciais",
			errs: []error{domain.NewSyncError(domain.ErrorKindAccountInactive, "CUSTOMER_NOT_ENABLED", "", nil)},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(1)
				m.accounts.EXPECT().Deactivate(gomock.Any(), "123").Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackAccountInactive, result.Status)
				assert.Equal(t, []int{1, 0, 0}, calls)
			},
		},
		{
			name: "relatório incompatível pula o tipo sem repetir",
			errs: []error{domain.NewSyncError(domain.ErrorKindReportTypeMismatch, "PROHIBITED_FIELD_COMBINATION", "", nil)},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(1)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackKindSkipped, result.Status)
				assert.Equal(t, []int{1, 0, 0}, calls)
			},
		},
		{
			name: "erro transitório é repetido até o limite antes de trocar de credencial",
			errs: []error{domain.NewSyncError(domain.ErrorKindTransientServer, "INTERNAL_ERROR", "", nil), nil},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(2)
				m.credentials.EXPECT().MarkSuccess(gomock.Any(), "P2", now).Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackSucceeded, result.Status)
				assert.Equal(t, []int{3, 1, 0}, calls)
			},
		},
		{
			name: "erro desconhecido gera alerta crítico e segue para a próxima",
			errs: []error{errors.New("resposta inesperada"), nil},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(2)
				m.alerter.EXPECT().
					Notify(gomock.Any(), "123", alerts.SeverityCritical, "erro desconhecido ao sincronizar campaign (unknown)").
					Return(true)
				m.credentials.EXPECT().MarkSuccess(gomock.Any(), "P2", now).Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, []int{3, 1, 0}, calls)
			},
		},
		{
			name: "erros desconhecidos distintos geram o mesmo texto de alerta",
			errs: []error{
				errors.New("resposta inesperada: request-id 8f1c"),
				errors.New("resposta inesperada: request-id 77aa"),
				nil,
			},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(3)
				m.alerter.EXPECT().
					Notify(gomock.Any(), "123", alerts.SeverityCritical, "erro desconhecido ao sincronizar campaign (unknown)").
					Return(true)
				m.alerter.EXPECT().
					Notify(gomock.Any(), "123", alerts.SeverityCritical, "erro desconhecido ao sincronizar campaign (unknown)").
					Return(false)
				m.credentials.EXPECT().MarkSuccess(gomock.Any(), "P3", now).Return(nil)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, "C3", result.CredentialID)
				assert.Equal(t, []int{3, 3, 1}, calls)
			},
		},
		{
			name: "todas as credenciais falham gera alerta e sinal de esgotamento",
			errs: []error{
				domain.NewSyncError(domain.ErrorKindRateExceeded, "RESOURCE_EXHAUSTED", "", nil),
				domain.NewSyncError(domain.ErrorKindRateExceeded, "RESOURCE_EXHAUSTED", "", nil),
				domain.NewSyncError(domain.ErrorKindRateExceeded, "RESOURCE_EXHAUSTED", "", nil),
			},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(3)
				m.alerter.EXPECT().Notify(gomock.Any(), "123", alerts.SeverityWarning, gomock.Any()).Return(true)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				assert.True(t, errors.Is(err, syncing.ErrCredentialsExhausted))
				assert.Equal(t, syncing.FallbackExhausted, result.Status)
				assert.Equal(t, 3, result.Attempts)
				assert.Equal(t, []int{1, 1, 1}, calls)
			},
		},
		{
			name: "conta sem credenciais esgota imediatamente",
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(nil, nil)
				m.alerter.EXPECT().Notify(gomock.Any(), "123", alerts.SeverityWarning, gomock.Any()).Return(false)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				assert.True(t, errors.Is(err, syncing.ErrCredentialsExhausted))
				assert.Equal(t, 0, result.Attempts)
			},
		},
		{
			name: "violação de integridade não troca de credencial",
			errs: []error{fmt.Errorf("erro ao gravar: %w", domain.ErrIntegrityViolation)},
			setup: func(m fallbackMocks) {
				m.credentials.EXPECT().Candidates(gomock.Any(), "123").Return(three, nil)
				m.expectClients(1)
				m.alerter.EXPECT().Notify(gomock.Any(), "123", alerts.SeverityCritical, gomock.Any()).Return(true)
			},
			validate: func(t *testing.T, result *syncing.FallbackResult, err error, calls []int) {
				require.NoError(t, err)
				assert.Equal(t, syncing.FallbackPersistenceFailed, result.Status)
				assert.Equal(t, []int{1, 0, 0}, calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := fallbackMocks{
				credentials: repomocks.NewMockCredentialRepository(ctrl),
				accounts:    repomocks.NewMockAccountRepository(ctrl),
				factory:     mocks.NewMockReportClientFactory(ctrl),
				alerter:     mocks.NewMockAlerter(ctrl),
				clients: []*mocks.MockReportClient{
					mocks.NewMockReportClient(ctrl),
					mocks.NewMockReportClient(ctrl),
					mocks.NewMockReportClient(ctrl),
				},
			}
			tt.setup(m)

			retry := syncing.NewRetryPolicy(config.Sync{MaxAttempts: 3, BackoffExponent: 2, BackoffUnit: time.Second}, nil).
				WithSleeper(noSleep)
			runner := syncing.NewCredentialFallbackRunner(m.credentials, m.accounts, m.factory, retry, m.alerter, nil).
				WithClock(fixedClock{now: now})

			calls := make([]int, len(m.clients))
			op := func(_ context.Context, client syncing.ReportClient) error {
				for i, c := range m.clients {
					if client == c {
						calls[i]++
						if i < len(tt.errs) {
							return tt.errs[i]
						}
						return nil
					}
				}
				return errors.New("cliente inesperado")
			}

			result, err := runner.Run(context.Background(), testAccount(), "campaign", op)
			tt.validate(t, result, err, calls)
		})
	}
}

func TestCredentialFallbackRunnerRunCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	credentials := repomocks.NewMockCredentialRepository(ctrl)
	factory := mocks.NewMockReportClientFactory(ctrl)
	client := mocks.NewMockReportClient(ctrl)

	credentials.EXPECT().Candidates(gomock.Any(), "123").
		Return([]domain.CredentialCandidate{candidate(1), candidate(2)}, nil)
	factory.EXPECT().NewClient(gomock.Any(), gomock.Any(), "123").Return(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	retry := syncing.NewRetryPolicy(config.Sync{MaxAttempts: 3, BackoffExponent: 2, BackoffUnit: time.Second}, nil).
		WithSleeper(noSleep)
	runner := syncing.NewCredentialFallbackRunner(credentials, nil, factory, retry, nil, nil)

	result, err := runner.Run(ctx, testAccount(), "campaign", func(context.Context, syncing.ReportClient) error {
		cancel()
		return context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Attempts)
}
