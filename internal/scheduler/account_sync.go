package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/cache"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

// JobType identifica uma rotina do agendador
type JobType string

const (
	JobFull        JobType = "full"
	JobHourly      JobType = "hourly"
	JobDiscovery   JobType = "discovery"
	JobPermissions JobType = "permissions"
	JobAll         JobType = "all"
)

var (
	ErrUnknownJob  = errors.New("rotina de sincronização desconhecida")
	ErrJobRunning  = errors.New("rotina de sincronização já em andamento")
	ErrAccountBusy = errors.New("conta já está sendo sincronizada")
)

// ParseJobType valida o nome recebido pela API
func ParseJobType(value string) (JobType, error) {
	switch job := JobType(value); job {
	case JobFull, JobHourly, JobDiscovery, JobPermissions, JobAll:
		return job, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownJob, value)
}

// JobStatus guarda a última execução de uma rotina
type JobStatus struct {
	Running     bool      `json:"running"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Accounts    int       `json:"accounts"`
	Failures    int       `json:"failures"`
	LastError   string    `json:"last_error,omitempty"`
}

// AccountSyncService escolhe as contas vencidas e despacha as sincronizações,
// com no máximo MaxConcurrentJobs contas em paralelo e RequestsPerSecond despachos por segundo
type AccountSyncService struct {
	scheduler *gocron.Scheduler
	config    config.Sync
	accounts  repository.AccountRepository
	syncer    AccountSyncer
	prober    PermissionProber
	locker    cache.Locker
	limiter   ratelimit.Limiter
	metrics   *metrics.Metrics
	now       func() time.Time

	mu   sync.Mutex
	jobs map[JobType]*JobStatus
}

func NewAccountSyncService(
	accounts repository.AccountRepository,
	syncer AccountSyncer,
	prober PermissionProber,
	locker cache.Locker,
	cfg config.Sync,
	m *metrics.Metrics,
) *AccountSyncService {
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	if cfg.MaxConcurrentJobs < 1 {
		cfg.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"full_cron":           cfg.FullCron,
		"hourly_cron":         cfg.HourlyCron,
		"discovery_cron":      cfg.DiscoveryCron,
		"probe_cron":          cfg.PermissionProbeCron,
		"batch_size":          cfg.BatchSize,
		"max_concurrent_jobs": cfg.MaxConcurrentJobs,
		"requests_per_second": cfg.RequestsPerSecond,
		"sync_enabled":        cfg.Enabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &AccountSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    cfg,
		accounts:  accounts,
		syncer:    syncer,
		prober:    prober,
		locker:    locker,
		limiter:   limiter,
		metrics:   m,
		now:       time.Now,
		jobs:      make(map[JobType]*JobStatus),
	}
}

// Start registra as rotinas habilitadas e inicia o agendador
func (s *AccountSyncService) Start(ctx context.Context) error {
	schedules := make(map[JobType]string)
	if s.config.Enabled {
		schedules[JobFull] = s.config.FullCron
		schedules[JobHourly] = s.config.HourlyCron
		if s.config.DiscoveryEnabled {
			schedules[JobDiscovery] = s.config.DiscoveryCron
		}
		if s.config.PermissionProbe {
			schedules[JobPermissions] = s.config.PermissionProbeCron
		}
	} else {
		logrus.Info("Sincronização de estatísticas desabilitada por configuração")
	}

	for job, cron := range schedules {
		job := job
		_, err := s.scheduler.Cron(cron).Do(func() {
			if err := s.RunJob(ctx, job); err != nil && !errors.Is(err, ErrJobRunning) {
				logrus.WithError(err).WithField("job", job).Error("Erro na rotina agendada")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar rotina %s (%s): %w", job, cron, err)
		}
		logrus.WithFields(logrus.Fields{"job": job, "cron": cron}).Info("Rotina de sincronização agendada")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// AddMaintenance agenda uma tarefa periódica fora das rotinas de sincronização. Deve ser chamado antes de Start.
func (s *AccountSyncService) AddMaintenance(name string, every time.Duration, fn func()) error {
	if every <= 0 {
		return fmt.Errorf("intervalo inválido para %s: %s", name, every)
	}

	if _, err := s.scheduler.Every(every).WaitForSchedule().Do(fn); err != nil {
		return fmt.Errorf("erro ao agendar manutenção %s: %w", name, err)
	}

	logrus.WithFields(logrus.Fields{"task": name, "every": every}).Info("Tarefa de manutenção agendada")
	return nil
}

// RunJob executa uma rotina até o fim; duas execuções da mesma rotina não se sobrepõem
func (s *AccountSyncService) RunJob(ctx context.Context, job JobType) error {
	if job == JobAll {
		for _, step := range []JobType{JobDiscovery, JobFull, JobHourly, JobPermissions} {
			if err := s.RunJob(ctx, step); err != nil && !errors.Is(err, ErrJobRunning) {
				return err
			}
		}
		return nil
	}

	if !s.begin(job) {
		logrus.WithField("job", job).Info("Rotina já em andamento, ignorando")
		return ErrJobRunning
	}

	accounts, failures, err := s.run(ctx, job)
	s.end(job, accounts, failures, err)
	return err
}

func (s *AccountSyncService) run(ctx context.Context, job JobType) (int, int, error) {
	switch job {
	case JobFull:
		return s.syncDue(ctx, domain.SyncScopeFull)
	case JobHourly:
		return s.syncDue(ctx, domain.SyncScopeHourly)
	case JobDiscovery:
		return s.discover(ctx)
	case JobPermissions:
		report, err := s.prober.Run(ctx)
		if err != nil {
			return 0, 0, err
		}
		return report.Checked, report.Failed, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrUnknownJob, job)
}

// TriggerManualSync inicia a rotina em segundo plano
func (s *AccountSyncService) TriggerManualSync(job JobType) error {
	if _, err := ParseJobType(string(job)); err != nil {
		return err
	}
	if job != JobAll && s.isRunning(job) {
		return ErrJobRunning
	}

	logrus.WithField("job", job).Info("Iniciando sincronização manual")
	go func() {
		if err := s.RunJob(context.Background(), job); err != nil && !errors.Is(err, ErrJobRunning) {
			logrus.WithError(err).WithField("job", job).Error("Erro na sincronização manual")
		}
	}()

	return nil
}

// SyncAccount sincroniza uma conta na hora, sob o lock da conta
func (s *AccountSyncService) SyncAccount(ctx context.Context, accountID string, scope domain.SyncScope) (*domain.AccountSyncReport, error) {
	unlock, ok, err := s.locker.TryLock(ctx, accountLockKey(accountID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccountBusy
	}
	defer s.release(accountID, unlock)

	return s.syncer.SyncAccount(ctx, accountID, scope)
}

// syncDue sincroniza as contas vencidas do escopo em um lote
func (s *AccountSyncService) syncDue(ctx context.Context, scope domain.SyncScope) (int, int, error) {
	interval := s.config.FullSyncInterval
	if scope == domain.SyncScopeHourly {
		interval = s.config.HourlySyncInterval
	}

	now := s.now().UTC()
	today := domain.DateOf(now)
	accounts, err := s.accounts.ListDue(ctx, scope, now.Add(-interval), today.AddDate(0, 0, -1), s.config.BatchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao listar contas vencidas: %w", err)
	}

	if len(accounts) == 0 {
		logrus.WithField("scope", scope).Info("Nenhuma conta vencida para sincronização")
		return 0, 0, nil
	}

	logrus.WithFields(logrus.Fields{
		"scope":    scope,
		"accounts": len(accounts),
	}).Info("Contas encontradas para sincronização")

	failures := s.dispatch(ctx, accounts, func(ctx context.Context, account *domain.Account) error {
		// a tentativa é carimbada antes de sincronizar: conta que falha vai para o fim da fila
		if err := s.accounts.StampAttempt(ctx, account.ID, scope, now); err != nil {
			log.ForContext(ctx).WithError(err).WithField("account_id", account.ID).Warn("Erro ao registrar tentativa de sincronização")
		}

		var report *domain.AccountSyncReport
		var err error
		if scope == domain.SyncScopeFull {
			report, err = s.syncer.FullSync(ctx, account)
		} else {
			report, err = s.syncer.CampaignsOnlySync(ctx, account)
		}
		if err != nil {
			return err
		}
		if !report.Completed() && !report.AccountInactive {
			return fmt.Errorf("sincronização parcial da conta %s", account.ID)
		}
		return nil
	})

	return len(accounts), failures, nil
}

// discover roda a descoberta de contas para cada gerenciadora ativa
func (s *AccountSyncService) discover(ctx context.Context) (int, int, error) {
	managers, err := s.accounts.ListManagers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao listar contas gerenciadoras: %w", err)
	}

	failures := s.dispatch(ctx, managers, func(ctx context.Context, manager *domain.Account) error {
		report, err := s.syncer.MCCAccountDiscovery(ctx, manager)
		if err != nil {
			return err
		}
		log.ForContext(ctx).WithFields(log.Fields{
			"manager_id":   manager.ID,
			"sync_visible": report.Visible,
			"sync_created": len(report.Created),
		}).Info("Gerenciadora processada")
		return nil
	})

	return len(managers), failures, nil
}

// dispatch executa op para cada conta no pool de workers e devolve quantas falharam.
// Contas com lock em outro processo são puladas sem contar como falha.
func (s *AccountSyncService) dispatch(
	ctx context.Context,
	accounts []*domain.Account,
	op func(ctx context.Context, account *domain.Account) error,
) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, account := range accounts {
		if ctx.Err() != nil {
			break
		}

		s.limiter.Take()
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.Account) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if err := s.runLocked(ctx, acc, op); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(account)
	}

	wg.Wait()
	return failures
}

func (s *AccountSyncService) runLocked(
	ctx context.Context,
	account *domain.Account,
	op func(ctx context.Context, account *domain.Account) error,
) error {
	ctx, _ = log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx).WithField("account_id", account.ID)

	unlock, ok, err := s.locker.TryLock(ctx, accountLockKey(account.ID))
	if err != nil {
		logger.WithError(err).Error("Erro ao obter lock da conta")
		return err
	}
	if !ok {
		logger.Info("Conta já em sincronização, pulando")
		return nil
	}
	defer s.release(account.ID, unlock)

	if s.metrics != nil {
		s.metrics.IncSyncsRunning()
		defer s.metrics.DecSyncsRunning()
	}

	if err := op(ctx, account); err != nil {
		logger.WithError(err).Error("Erro ao sincronizar conta")
		return err
	}
	return nil
}

func (s *AccountSyncService) release(accountID string, unlock cache.Unlock) {
	if err := unlock(context.Background()); err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Warn("Erro ao liberar lock da conta")
	}
}

func (s *AccountSyncService) begin(job JobType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.jobs[job]
	if !ok {
		status = &JobStatus{}
		s.jobs[job] = status
	}
	if status.Running {
		return false
	}

	status.Running = true
	status.StartedAt = s.now()
	return true
}

func (s *AccountSyncService) end(job JobType, accounts, failures int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.jobs[job]
	status.Running = false
	status.CompletedAt = s.now()
	status.Accounts = accounts
	status.Failures = failures
	status.LastError = ""
	if err != nil {
		status.LastError = err.Error()
	}

	logrus.WithFields(logrus.Fields{
		"job":      job,
		"accounts": accounts,
		"failures": failures,
		"duration": status.CompletedAt.Sub(status.StartedAt).String(),
	}).Info("Rotina de sincronização concluída")
}

func (s *AccountSyncService) isRunning(job JobType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.jobs[job]
	return ok && status.Running
}

// GetStatus retorna a configuração e a última execução de cada rotina
func (s *AccountSyncService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[JobType]JobStatus, len(s.jobs))
	for job, status := range s.jobs {
		jobs[job] = *status
	}

	return map[string]any{
		"sync_enabled":        s.config.Enabled,
		"discovery_enabled":   s.config.DiscoveryEnabled,
		"permission_probe":    s.config.PermissionProbe,
		"full_cron":           s.config.FullCron,
		"hourly_cron":         s.config.HourlyCron,
		"full_interval":       s.config.FullSyncInterval.String(),
		"hourly_interval":     s.config.HourlySyncInterval.String(),
		"batch_size":          s.config.BatchSize,
		"max_concurrent_jobs": s.config.MaxConcurrentJobs,
		"requests_per_second": s.config.RequestsPerSecond,
		"jobs":                jobs,
	}
}

func accountLockKey(accountID string) string {
	return "account:" + accountID
}
