package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/cache"
	repomocks "github.com/vfg2006/traffic-stats-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/scheduler/mocks"
)

var now = time.Date(2020, 3, 10, 15, 30, 0, 0, time.UTC)

type serviceMocks struct {
	accounts *repomocks.MockAccountRepository
	syncer   *mocks.MockAccountSyncer
	prober   *mocks.MockPermissionProber
	locker   *cache.MemoryLocker
}

func newTestService(ctrl *gomock.Controller) (*AccountSyncService, serviceMocks) {
	m := serviceMocks{
		accounts: repomocks.NewMockAccountRepository(ctrl),
		syncer:   mocks.NewMockAccountSyncer(ctrl),
		prober:   mocks.NewMockPermissionProber(ctrl),
		locker:   cache.NewMemoryLocker(),
	}

	cfg := config.Sync{
		BatchSize:          50,
		MaxConcurrentJobs:  2,
		FullSyncInterval:   24 * time.Hour,
		HourlySyncInterval: time.Hour,
	}

	service := NewAccountSyncService(m.accounts, m.syncer, m.prober, m.locker, cfg, nil)
	service.now = func() time.Time { return now }
	return service, m
}

func account(id string) *domain.Account {
	return &domain.Account{ID: id, IsActive: true}
}

func completed(id string) *domain.AccountSyncReport {
	return &domain.AccountSyncReport{AccountID: id, Stamped: true}
}

func TestAccountSyncServiceRunJob(t *testing.T) {
	yesterday := time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		job      JobType
		setup    func(m serviceMocks)
		validate func(t *testing.T, status JobStatus, err error)
	}{
		{
			name: "sincronização completa das contas vencidas",
			job:  JobFull,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().
					ListDue(gomock.Any(), domain.SyncScopeFull, now.Add(-24*time.Hour), yesterday, 50).
					Return([]*domain.Account{account("1"), account("2")}, nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "1", domain.SyncScopeFull, now).Return(nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "2", domain.SyncScopeFull, now).Return(nil)
				m.syncer.EXPECT().FullSync(gomock.Any(), account("1")).Return(completed("1"), nil)
				m.syncer.EXPECT().FullSync(gomock.Any(), account("2")).
					Return(&domain.AccountSyncReport{AccountID: "2", ExhaustedKinds: []domain.StatisticKind{domain.KindVideo}}, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.False(t, status.Running)
				assert.Equal(t, 2, status.Accounts)
				assert.Equal(t, 1, status.Failures)
				assert.Empty(t, status.LastError)
			},
		},
		{
			name: "sincronização horária usa o intervalo horário",
			job:  JobHourly,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().
					ListDue(gomock.Any(), domain.SyncScopeHourly, now.Add(-time.Hour), yesterday, 50).
					Return([]*domain.Account{account("1")}, nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "1", domain.SyncScopeHourly, now).Return(nil)
				m.syncer.EXPECT().CampaignsOnlySync(gomock.Any(), account("1")).Return(nil, errors.New("banco fora do ar"))
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, status.Accounts)
				assert.Equal(t, 1, status.Failures)
			},
		},
		{
			name: "conta desativada durante a sincronização não conta como falha",
			job:  JobFull,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeFull, gomock.Any(), gomock.Any(), 50).
					Return([]*domain.Account{account("1")}, nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "1", domain.SyncScopeFull, now).Return(nil)
				m.syncer.EXPECT().FullSync(gomock.Any(), account("1")).
					Return(&domain.AccountSyncReport{AccountID: "1", AccountInactive: true}, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Zero(t, status.Failures)
			},
		},
		{
			name: "conta com lock de outro processo é pulada",
			job:  JobFull,
			setup: func(m serviceMocks) {
				_, ok, err := m.locker.TryLock(context.Background(), accountLockKey("1"))
				require.NoError(t, err)
				require.True(t, ok)

				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeFull, gomock.Any(), gomock.Any(), 50).
					Return([]*domain.Account{account("1")}, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, status.Accounts)
				assert.Zero(t, status.Failures)
			},
		},
		{
			name: "conta com credenciais esgotadas não impede as demais",
			job:  JobFull,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeFull, gomock.Any(), gomock.Any(), 50).
					Return([]*domain.Account{account("1"), account("2")}, nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "1", domain.SyncScopeFull, now).Return(nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "2", domain.SyncScopeFull, now).Return(nil)
				m.syncer.EXPECT().FullSync(gomock.Any(), account("1")).
					Return(&domain.AccountSyncReport{AccountID: "1", ExhaustedKinds: []domain.StatisticKind{domain.KindCampaign}}, nil)
				m.syncer.EXPECT().FullSync(gomock.Any(), account("2")).Return(completed("2"), nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, status.Accounts)
				assert.Equal(t, 1, status.Failures)
			},
		},
		{
			name: "erro ao registrar a tentativa não impede a sincronização",
			job:  JobHourly,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeHourly, gomock.Any(), gomock.Any(), 50).
					Return([]*domain.Account{account("1")}, nil)
				m.accounts.EXPECT().StampAttempt(gomock.Any(), "1", domain.SyncScopeHourly, now).Return(errors.New("timeout"))
				m.syncer.EXPECT().CampaignsOnlySync(gomock.Any(), account("1")).Return(completed("1"), nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Zero(t, status.Failures)
			},
		},
		{
			name: "nenhuma conta vencida",
			job:  JobHourly,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeHourly, gomock.Any(), gomock.Any(), 50).Return(nil, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Zero(t, status.Accounts)
			},
		},
		{
			name: "erro ao listar contas",
			job:  JobFull,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeFull, gomock.Any(), gomock.Any(), 50).
					Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				assert.Error(t, err)
				assert.Contains(t, status.LastError, "timeout")
				assert.False(t, status.Running)
			},
		},
		{
			name: "descoberta percorre as gerenciadoras",
			job:  JobDiscovery,
			setup: func(m serviceMocks) {
				m.accounts.EXPECT().ListManagers(gomock.Any()).Return([]*domain.Account{account("900")}, nil)
				m.syncer.EXPECT().MCCAccountDiscovery(gomock.Any(), account("900")).
					Return(&domain.DiscoveryReport{ManagerID: "900", Visible: 3, Created: []string{"1"}}, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, status.Accounts)
				assert.Zero(t, status.Failures)
			},
		},
		{
			name: "verificação de permissões",
			job:  JobPermissions,
			setup: func(m serviceMocks) {
				m.prober.EXPECT().Run(gomock.Any()).Return(&domain.ProbeReport{Checked: 4, Healed: 1, Failed: 3}, nil)
			},
			validate: func(t *testing.T, status JobStatus, err error) {
				require.NoError(t, err)
				assert.Equal(t, 4, status.Accounts)
				assert.Equal(t, 3, status.Failures)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			err := service.RunJob(context.Background(), tt.job)

			jobs := service.GetStatus()["jobs"].(map[JobType]JobStatus)
			tt.validate(t, jobs[tt.job], err)
		})
	}
}

func TestAccountSyncServiceRunAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	gomock.InOrder(
		m.accounts.EXPECT().ListManagers(gomock.Any()).Return(nil, nil),
		m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeFull, gomock.Any(), gomock.Any(), 50).Return(nil, nil),
		m.accounts.EXPECT().ListDue(gomock.Any(), domain.SyncScopeHourly, gomock.Any(), gomock.Any(), 50).Return(nil, nil),
		m.prober.EXPECT().Run(gomock.Any()).Return(&domain.ProbeReport{}, nil),
	)

	require.NoError(t, service.RunJob(context.Background(), JobAll))

	jobs := service.GetStatus()["jobs"].(map[JobType]JobStatus)
	assert.Len(t, jobs, 4)
}

func TestAccountSyncServiceJobAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(ctrl)
	service.jobs[JobFull] = &JobStatus{Running: true}

	err := service.RunJob(context.Background(), JobFull)
	assert.ErrorIs(t, err, ErrJobRunning)

	assert.ErrorIs(t, service.TriggerManualSync(JobFull), ErrJobRunning)
	assert.ErrorIs(t, service.TriggerManualSync("weekly"), ErrUnknownJob)
}

func TestAccountSyncServiceSyncAccount(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m serviceMocks)
		validate func(t *testing.T, report *domain.AccountSyncReport, err error)
	}{
		{
			name: "sincroniza a conta sob lock",
			setup: func(m serviceMocks) {
				m.syncer.EXPECT().SyncAccount(gomock.Any(), "1", domain.SyncScopeHourly).Return(completed("1"), nil)
			},
			validate: func(t *testing.T, report *domain.AccountSyncReport, err error) {
				require.NoError(t, err)
				assert.True(t, report.Stamped)
			},
		},
		{
			name: "conta ocupada",
			setup: func(m serviceMocks) {
				_, _, _ = m.locker.TryLock(context.Background(), accountLockKey("1"))
			},
			validate: func(t *testing.T, report *domain.AccountSyncReport, err error) {
				assert.ErrorIs(t, err, ErrAccountBusy)
				assert.Nil(t, report)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			report, err := service.SyncAccount(context.Background(), "1", domain.SyncScopeHourly)
			tt.validate(t, report, err)
		})
	}

	// o lock é liberado ao final
	ctrl := gomock.NewController(t)
	service, m := newTestService(ctrl)
	m.syncer.EXPECT().SyncAccount(gomock.Any(), "1", domain.SyncScopeFull).Return(completed("1"), nil)
	_, err := service.SyncAccount(context.Background(), "1", domain.SyncScopeFull)
	require.NoError(t, err)

	_, ok, err := m.locker.TryLock(context.Background(), accountLockKey("1"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseJobType(t *testing.T) {
	for _, value := range []string{"full", "hourly", "discovery", "permissions", "all"} {
		job, err := ParseJobType(value)
		require.NoError(t, err)
		assert.Equal(t, JobType(value), job)
	}

	_, err := ParseJobType("monthly")
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestAccountSyncServiceAddMaintenance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(ctrl)

	assert.Error(t, service.AddMaintenance("alertas", 0, func() {}))
	require.NoError(t, service.AddMaintenance("alertas", time.Minute, func() {}))
	assert.Len(t, service.scheduler.Jobs(), 1)
}
