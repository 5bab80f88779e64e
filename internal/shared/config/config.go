package config

import (
	"fmt"
	"runtime"
	"time"

	"stellaris-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Galaxy    GalaxyConfig
	Worker    WorkerConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// GalaxyConfig holds the default parameters of a galaxy generation request.
// Requests may override every field except SystemScale.
type GalaxyConfig struct {
	SiteCount          int
	Density            float64
	RootSeed           string
	MinSeparation      float64
	Height             float64
	HeightDistribution string
	BetaSigma          float64
	MassTransform      string
	MassScale          float64
	SystemScale        float64
}

type WorkerConfig struct {
	PoolSize     int
	PollInterval time.Duration
}

var GlobalConfig *Config

// Init loads and validates the full server configuration into GlobalConfig.
func Init() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if err := cfg.validateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = cfg
	return nil
}

// Load reads the configuration without the server-only checks. The CLI uses it directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := load()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func load() *Config {
	return &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Auth:      loadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Galaxy:    loadGalaxyConfig(),
		Worker:    loadWorkerConfig(),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
		CacheTTL: time.Duration(utils.GetEnvInt("REDIS_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "stellaris"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", ""),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadGalaxyConfig() GalaxyConfig {
	return GalaxyConfig{
		SiteCount:          utils.GetEnvInt("GALAXY_SITE_COUNT", 256),
		Density:            utils.GetEnvFloat("GALAXY_DENSITY", 0.25),
		RootSeed:           utils.GetEnv("GALAXY_ROOT_SEED", ""),
		MinSeparation:      utils.GetEnvFloat("GALAXY_MIN_SEPARATION", 1.0),
		Height:             utils.GetEnvFloat("GALAXY_HEIGHT", 1.0),
		HeightDistribution: utils.GetEnv("GALAXY_HEIGHT_DISTRIBUTION", "beta"),
		BetaSigma:          utils.GetEnvFloat("GALAXY_BETA_SIGMA", 0.05),
		MassTransform:      utils.GetEnv("GALAXY_MASS_TRANSFORM", "area_density"),
		MassScale:          utils.GetEnvFloat("GALAXY_MASS_SCALE", 1.0),
		SystemScale:        utils.GetEnvFloat("GALAXY_SYSTEM_SCALE", 0.4),
	}
}

func loadWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PoolSize:     utils.GetEnvInt("WORKER_POOL_SIZE", runtime.GOMAXPROCS(0)),
		PollInterval: time.Duration(utils.GetEnvInt("GENERATION_POLL_INTERVAL_MS", 100)) * time.Millisecond,
	}
}

func (c *Config) validate() error {
	if c.Worker.PoolSize < 1 {
		return fmt.Errorf("WORKER_POOL_SIZE must be at least 1")
	}

	if c.Worker.PollInterval <= 0 {
		return fmt.Errorf("GENERATION_POLL_INTERVAL_MS must be positive")
	}

	if c.Galaxy.SystemScale <= 0 {
		return fmt.Errorf("GALAXY_SYSTEM_SCALE must be positive")
	}

	return nil
}

func (c *Config) validateServer() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
