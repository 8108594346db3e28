package syncing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/traffic-stats-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func unreadable(permissionID, accountID string) domain.CredentialCandidate {
	return domain.CredentialCandidate{
		Permission: domain.Permission{ID: permissionID, CredentialID: "C" + permissionID, AccountID: accountID},
		Credential: domain.Credential{ID: "C" + permissionID, RefreshToken: "token"},
	}
}

func TestPermissionProbeRun(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient)
		validate func(t *testing.T, report *domain.ProbeReport, err error)
	}{
		{
			name: "permissão volta a ler quando a conta responde",
			setup: func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient) {
				credentials.EXPECT().ListUnreadable(gomock.Any()).Return([]domain.CredentialCandidate{unreadable("P1", "123")}, nil)
				accounts.EXPECT().GetAccount(gomock.Any(), "123").Return(testAccount(), nil)
				factory.EXPECT().NewClient(gomock.Any(), gomock.Any(), "123").Return(client, nil)
				client.EXPECT().Fetch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req domain.ReportRequest) (syncing.RowIterator, error) {
						assert.Equal(t, "customer", req.Resource)
						return newSliceIterator(domain.Row{"customer.id": "123"}), nil
					})
				credentials.EXPECT().GrantRead(gomock.Any(), "P1").Return(nil)
			},
			validate: func(t *testing.T, report *domain.ProbeReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ProbeReport{Checked: 1, Healed: 1}, *report)
			},
		},
		{
			name: "conta inativa é desativada uma única vez",
			setup: func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient) {
				credentials.EXPECT().ListUnreadable(gomock.Any()).Return([]domain.CredentialCandidate{
					unreadable("P1", "123"),
					unreadable("P2", "123"),
				}, nil)
				accounts.EXPECT().GetAccount(gomock.Any(), "123").Return(testAccount(), nil)
				factory.EXPECT().NewClient(gomock.Any(), gomock.Any(), "123").Return(client, nil)
				client.EXPECT().Fetch(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewSyncError(domain.ErrorKindAccountInactive, "CUSTOMER_NOT_ENABLED", "conta cancelada", nil))
				accounts.EXPECT().Deactivate(gomock.Any(), "123").Return(nil)
			},
			validate: func(t *testing.T, report *domain.ProbeReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ProbeReport{Checked: 1, Deactivated: 1}, *report)
			},
		},
		{
			name: "permissão continua negada",
			setup: func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient) {
				credentials.EXPECT().ListUnreadable(gomock.Any()).Return([]domain.CredentialCandidate{unreadable("P1", "123")}, nil)
				accounts.EXPECT().GetAccount(gomock.Any(), "123").Return(testAccount(), nil)
				factory.EXPECT().NewClient(gomock.Any(), gomock.Any(), "123").Return(client, nil)
				iter := newSliceIterator()
				iter.err = domain.NewSyncError(domain.ErrorKindPermissionDenied, "USER_PERMISSION_DENIED", "sem acesso", nil)
				client.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(iter, nil)
			},
			validate: func(t *testing.T, report *domain.ProbeReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ProbeReport{Checked: 1, Failed: 1}, *report)
			},
		},
		{
			name: "conta da permissão não existe",
			setup: func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient) {
				credentials.EXPECT().ListUnreadable(gomock.Any()).Return([]domain.CredentialCandidate{unreadable("P1", "999")}, nil)
				accounts.EXPECT().GetAccount(gomock.Any(), "999").Return(nil, nil)
			},
			validate: func(t *testing.T, report *domain.ProbeReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ProbeReport{Checked: 1, Failed: 1}, *report)
			},
		},
		{
			name: "erro ao listar permissões",
			setup: func(credentials *repomocks.MockCredentialRepository, accounts *repomocks.MockAccountRepository, factory *mocks.MockReportClientFactory, client *mocks.MockReportClient) {
				credentials.EXPECT().ListUnreadable(gomock.Any()).Return(nil, errors.New("banco fora do ar"))
			},
			validate: func(t *testing.T, report *domain.ProbeReport, err error) {
				assert.Error(t, err)
				assert.Nil(t, report)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			credentials := repomocks.NewMockCredentialRepository(ctrl)
			accounts := repomocks.NewMockAccountRepository(ctrl)
			factory := mocks.NewMockReportClientFactory(ctrl)
			client := mocks.NewMockReportClient(ctrl)
			tt.setup(credentials, accounts, factory, client)

			report, err := syncing.NewPermissionProbe(credentials, accounts, factory, nil).Run(context.Background())
			tt.validate(t, report, err)
		})
	}
}
