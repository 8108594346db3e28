package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/cache"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/integrator/googleads"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/alerts"
	"github.com/vfg2006/traffic-stats-sync/internal/api"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/internal/scheduler"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/secret"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	box, err := secret.NewBox(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Chave de criptografia inválida")
	}

	accountRepo := repository.NewAccountRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn, box)
	entityRepo := repository.NewEntityRepository(pgConn)
	statisticRepo := repository.NewStatisticRepository(pgConn)
	hourlyRepo := repository.NewHourlyStatisticRepository(pgConn)

	m := metrics.NewMetrics(cfg.App.MetricsNamespace)
	notifier := alerts.NewNotifier(alerts.NewDedupStore(cfg.Alert.DedupWindow), m)

	adsIntegrator := googleads.New(cfg.AdsAPI)

	retry := syncing.NewRetryPolicy(cfg.Sync, m)
	fallback := syncing.NewCredentialFallbackRunner(credentialRepo, accountRepo, adsIntegrator, retry, notifier, m)
	orchestrator := syncing.NewAccountSyncOrchestrator(
		accountRepo,
		credentialRepo,
		entityRepo,
		statisticRepo,
		syncing.NewEntitySyncer(statisticRepo, entityRepo, cfg.Sync, m),
		syncing.NewHourlySyncer(hourlyRepo, entityRepo, cfg.Sync, m),
		fallback,
		m,
	)
	probe := syncing.NewPermissionProbe(credentialRepo, accountRepo, adsIntegrator, m)

	locker := cache.NewLocker(ctx, cfg.Redis)
	defer locker.Close()

	syncService := scheduler.NewAccountSyncService(accountRepo, orchestrator, probe, locker, cfg.Sync, m)
	if err := syncService.AddMaintenance("alert_dedup_cleanup", cfg.Alert.DedupWindow, notifier.Cleanup); err != nil {
		logrus.WithError(err).Warn("Limpeza de alertas não agendada")
	}

	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de estatísticas")
	} else {
		logrus.Info("Agendador de sincronização de estatísticas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticating.NewService(cfg.Auth),
		syncService,
		orchestrator,
		entityRepo,
		credentialRepo,
		pgConn,
		m,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do binário seja encontrado em desenvolvimento
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar de diretório")
	}
}

// pgconn cria uma conexão com o banco de dados e aplica as migrações se configurado
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	if dbConfig.RunMigrations {
		if err := conn.Migrate(); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	return conn
}
