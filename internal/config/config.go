package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends for credential slots.
const (
	StorageCookie   = "cookie"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App      AppConfig      `yaml:"app"`
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Logger   LoggerConfig   `yaml:"logger"`
	Media    MediaConfig    `yaml:"media"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `yaml:"name"`
	Env                   string `yaml:"env"`
	Host                  string `yaml:"host"`
	Port                  string `yaml:"port"`
	Version               string `yaml:"version"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// APIConfig points at the remote community API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig selects where visitor credential slots live.
type StorageConfig struct {
	Backend          string `yaml:"backend"`
	CookieSecure     bool   `yaml:"cookie_secure"`
	CookieDomain     string `yaml:"cookie_domain"`
	CookieEncryptKey string `yaml:"cookie_encrypt_key"`
	VisitorCookie    string `yaml:"visitor_cookie"`
	SlotTTLHours     int    `yaml:"slot_ttl_hours"`
}

// PostgresConfig holds DB connection values for the postgres slot backend.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	MaxConns       int    `yaml:"max_conns"`
	RunMigrations  bool   `yaml:"run_migrations"`
	ConnMaxIdleSec int    `yaml:"conn_max_idle_seconds"`
	ConnMaxLifeSec int    `yaml:"conn_max_life_seconds"`
}

// RedisConfig holds Redis connection values for the redis slot backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MediaConfig configures the image upload service.
type MediaConfig struct {
	CloudName    string `yaml:"cloud_name"`
	UploadPreset string `yaml:"upload_preset"`
	Folder       string `yaml:"folder"`
	BaseURL      string `yaml:"base_url"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables,
// applying defaults where possible. Environment values win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("PORTAL_CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:                  "barangay-portal",
			Env:                   "development",
			Host:                  "0.0.0.0",
			Port:                  "8080",
			Version:               "dev",
			RequestTimeoutSeconds: 30,
		},
		API: APIConfig{
			BaseURL:        "http://localhost:3000",
			TimeoutSeconds: 15,
		},
		Storage: StorageConfig{
			Backend:       StorageCookie,
			VisitorCookie: "portal_visitor",
			SlotTTLHours:  24 * 7,
		},
		Postgres: PostgresConfig{
			MaxConns:       10,
			RunMigrations:  true,
			ConnMaxIdleSec: 30,
			ConnMaxLifeSec: 300,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Logger: LoggerConfig{Level: "info", Format: "json"},
		Media: MediaConfig{
			Folder:  "barangayImage",
			BaseURL: "https://api.cloudinary.com",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnv("APP_PORT", cfg.App.Port)
	cfg.App.Version = getEnv("APP_VERSION", cfg.App.Version)
	cfg.App.RequestTimeoutSeconds = getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", cfg.App.RequestTimeoutSeconds)

	cfg.API.BaseURL = getEnv("PORTAL_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSeconds = getEnvAsInt("PORTAL_API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)

	cfg.Storage.Backend = strings.ToLower(getEnv("SLOT_STORAGE_BACKEND", cfg.Storage.Backend))
	cfg.Storage.CookieSecure = getEnvAsBool("SLOT_COOKIE_SECURE", cfg.Storage.CookieSecure)
	cfg.Storage.CookieDomain = getEnv("SLOT_COOKIE_DOMAIN", cfg.Storage.CookieDomain)
	cfg.Storage.CookieEncryptKey = getEnv("SLOT_COOKIE_ENCRYPT_KEY", cfg.Storage.CookieEncryptKey)
	cfg.Storage.VisitorCookie = getEnv("SLOT_VISITOR_COOKIE", cfg.Storage.VisitorCookie)
	cfg.Storage.SlotTTLHours = getEnvAsInt("SLOT_TTL_HOURS", cfg.Storage.SlotTTLHours)

	cfg.Postgres.DSN = getEnv("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Postgres.MaxConns = getEnvAsInt("POSTGRES_MAX_CONNS", cfg.Postgres.MaxConns)
	cfg.Postgres.RunMigrations = getEnvAsBool("POSTGRES_RUN_MIGRATIONS", cfg.Postgres.RunMigrations)
	cfg.Postgres.ConnMaxIdleSec = getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", cfg.Postgres.ConnMaxIdleSec)
	cfg.Postgres.ConnMaxLifeSec = getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", cfg.Postgres.ConnMaxLifeSec)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Format = getEnv("LOG_FORMAT", cfg.Logger.Format)

	cfg.Media.CloudName = getEnv("CLOUDINARY_CLOUD_NAME", cfg.Media.CloudName)
	cfg.Media.UploadPreset = getEnv("CLOUDINARY_UPLOAD_PRESET", cfg.Media.UploadPreset)
	cfg.Media.Folder = getEnv("CLOUDINARY_FOLDER", cfg.Media.Folder)
	cfg.Media.BaseURL = getEnv("CLOUDINARY_BASE_URL", cfg.Media.BaseURL)

	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Path = getEnv("METRICS_PATH", cfg.Metrics.Path)
}

// Validate rejects configurations the portal cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid PORTAL_API_BASE_URL %q", c.API.BaseURL)
	}
	switch c.Storage.Backend {
	case StorageCookie, StorageRedis, StorageMemory:
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return errors.New("POSTGRES_DSN required for postgres slot storage")
		}
	default:
		return fmt.Errorf("unknown SLOT_STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call timeout for the community API.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SlotTTL is how long a stored credential is kept by the storage backend.
// The token's own expiry still decides validity.
func (s StorageConfig) SlotTTL() time.Duration {
	if s.SlotTTLHours <= 0 {
		return 0
	}
	return time.Duration(s.SlotTTLHours) * time.Hour
}

// Enabled reports whether image uploads can be performed.
func (m MediaConfig) Enabled() bool {
	return m.CloudName != "" && m.UploadPreset != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
