package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Redis     Redis    `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	AdsAPI    AdsAPI   `mapstructure:",squash"`
	Sync      Sync     `mapstructure:",squash"`
	Alert     Alert    `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type App struct {
	LogLevel         string `mapstructure:"log_level"`
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`
}

type Redis struct {
	Enabled  bool          `mapstructure:"redis_enabled"`
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	LockTTL  time.Duration `mapstructure:"redis_lock_ttl"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// AdsAPI configura o acesso à API de relatórios da plataforma de anúncios
type AdsAPI struct {
	BaseURL        string        `mapstructure:"ads_api_base_url"`
	Version        string        `mapstructure:"ads_api_version"`
	URL            string        `mapstructure:"-"`
	DeveloperToken string        `mapstructure:"ads_api_developer_token"`
	ClientID       string        `mapstructure:"ads_api_client_id"`
	ClientSecret   string        `mapstructure:"ads_api_client_secret"`
	TokenURL       string        `mapstructure:"ads_api_token_url"`
	PageSize       int           `mapstructure:"ads_api_page_size"`
	RequestTimeout time.Duration `mapstructure:"ads_api_request_timeout"`
}

type Sync struct {
	MinFetchDateRaw     string        `mapstructure:"sync_min_fetch_date"`
	MinFetchDate        time.Time     `mapstructure:"-"`
	StabilityDays       int           `mapstructure:"sync_stability_days"`
	HourlyStabilityDays int           `mapstructure:"sync_hourly_stability_days"`
	MaxAttempts         int           `mapstructure:"sync_max_attempts"`
	BackoffExponent     float64       `mapstructure:"sync_backoff_exponent"`
	BackoffUnit         time.Duration `mapstructure:"sync_backoff_unit"`
	PersistBatchSize    int           `mapstructure:"sync_persist_batch_size"`
	BatchSize           int           `mapstructure:"sync_batch_size"`
	MaxConcurrentJobs   int           `mapstructure:"sync_max_concurrent_jobs"`
	RequestsPerSecond   int           `mapstructure:"sync_requests_per_second"`
	FullSyncInterval    time.Duration `mapstructure:"sync_full_interval"`
	HourlySyncInterval  time.Duration `mapstructure:"sync_hourly_interval"`
	FullCron            string        `mapstructure:"sync_full_cron"`
	HourlyCron          string        `mapstructure:"sync_hourly_cron"`
	DiscoveryCron       string        `mapstructure:"sync_discovery_cron"`
	PermissionProbeCron string        `mapstructure:"sync_permission_probe_cron"`
	Enabled             bool          `mapstructure:"sync_enabled"`
	DiscoveryEnabled    bool          `mapstructure:"sync_discovery_enabled"`
	PermissionProbe     bool          `mapstructure:"sync_permission_probe_enabled"`
}

type Alert struct {
	DedupWindow time.Duration `mapstructure:"alert_dedup_window"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adstats?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_LOCK_TTL", "2h")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ADS_API_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("ADS_API_VERSION", "v17")
	viper.SetDefault("ADS_API_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("ADS_API_CLIENT_ID", "your_client_id")
	viper.SetDefault("ADS_API_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("ADS_API_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("ADS_API_PAGE_SIZE", 10000)
	viper.SetDefault("ADS_API_REQUEST_TIMEOUT", "2m")

	// Defaults para sincronização de estatísticas
	viper.SetDefault("SYNC_MIN_FETCH_DATE", "2012-01-01")        // Data mínima de busca
	viper.SetDefault("SYNC_STABILITY_DAYS", 11)                  // Dias ainda revisados pela plataforma
	viper.SetDefault("SYNC_HOURLY_STABILITY_DAYS", 10)           // Janela recriada das estatísticas por hora
	viper.SetDefault("SYNC_MAX_ATTEMPTS", 5)                     // Tentativas por operação
	viper.SetDefault("SYNC_BACKOFF_EXPONENT", 2)                 // Espera = tentativa ^ expoente
	viper.SetDefault("SYNC_BACKOFF_UNIT", "1s")                  // Unidade da espera
	viper.SetDefault("SYNC_PERSIST_BATCH_SIZE", 1000)            // Linhas por comando de escrita
	viper.SetDefault("SYNC_BATCH_SIZE", 50)                      // Contas por rodada
	viper.SetDefault("SYNC_MAX_CONCURRENT_JOBS", 3)              // Contas sincronizadas em paralelo
	viper.SetDefault("SYNC_REQUESTS_PER_SECOND", 2)              // Despachos de conta por segundo
	viper.SetDefault("SYNC_FULL_INTERVAL", "24h")                // Idade mínima da última sincronização completa
	viper.SetDefault("SYNC_HOURLY_INTERVAL", "1h")               // Idade mínima da última sincronização horária
	viper.SetDefault("SYNC_FULL_CRON", "0 3 * * *")              // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_HOURLY_CRON", "15 * * * *")           // A cada hora
	viper.SetDefault("SYNC_DISCOVERY_CRON", "0 2 * * *")         // Todos os dias às 2h da manhã
	viper.SetDefault("SYNC_PERMISSION_PROBE_CRON", "30 * * * *") // A cada hora
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_DISCOVERY_ENABLED", false)
	viper.SetDefault("SYNC_PERMISSION_PROBE_ENABLED", false)

	viper.SetDefault("ALERT_DEDUP_WINDOW", "30m")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("METRICS_NAMESPACE", "adstats")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize deriva os campos calculados e valida os valores lidos
func (c *Config) finalize() error {
	minFetchDate, err := utils.ParseDate(c.Sync.MinFetchDateRaw)
	if err != nil {
		return fmt.Errorf("SYNC_MIN_FETCH_DATE inválida (%s): %w", c.Sync.MinFetchDateRaw, err)
	}
	if minFetchDate.IsZero() {
		return fmt.Errorf("SYNC_MIN_FETCH_DATE é obrigatória")
	}
	c.Sync.MinFetchDate = *minFetchDate

	if c.Sync.StabilityDays < 0 {
		return fmt.Errorf("SYNC_STABILITY_DAYS não pode ser negativo: %d", c.Sync.StabilityDays)
	}
	if c.Sync.MaxAttempts < 1 {
		c.Sync.MaxAttempts = 1
	}
	if c.Sync.MaxConcurrentJobs < 1 {
		c.Sync.MaxConcurrentJobs = 1
	}
	if c.Sync.BatchSize < 1 {
		return fmt.Errorf("SYNC_BATCH_SIZE deve ser positivo: %d", c.Sync.BatchSize)
	}

	c.AdsAPI.URL = fmt.Sprintf("%s/%s", c.AdsAPI.BaseURL, c.AdsAPI.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
