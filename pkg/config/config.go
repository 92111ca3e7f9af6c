package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// State backends supported for persisted client state.
const (
	StateBackendFile     = "file"
	StateBackendRedis    = "redis"
	StateBackendPostgres = "postgres"
)

const defaultAPIBaseURL = "http://localhost:5000/api"

// DefaultHost keeps the console server on loopback; it serves with the
// operator's stored token, so exposing it is an explicit choice.
const DefaultHost = "127.0.0.1"

type Config struct {
	Env  string
	Host string
	Port int

	API      APIConfig
	State    StateConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Polling  PollingConfig
	CORS     CORSConfig
	Log      LogConfig
}

// APIConfig points every store at the single configured backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StateConfig selects where persisted client state (auth, help) lives.
type StateConfig struct {
	Backend        string
	Dir            string
	AuthStorageKey string
	HelpStorageKey string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PollingConfig tunes the periodic snapshot refreshers.
type PollingConfig struct {
	HealthInterval time.Duration
	StatsInterval  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Host = strings.TrimSpace(v.GetString("HOST"))
	cfg.Port = v.GetInt("PORT")

	cfg.API = APIConfig{
		BaseURL: resolveBaseURL(v.GetString("API_BASE_URL"), v.GetString("NEXT_PUBLIC_API_BASE_URL")),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.State = StateConfig{
		Backend:        strings.ToLower(strings.TrimSpace(v.GetString("STATE_BACKEND"))),
		Dir:            v.GetString("STATE_DIR"),
		AuthStorageKey: v.GetString("AUTH_STORAGE_KEY"),
		HelpStorageKey: v.GetString("HELP_STORAGE_KEY"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Polling = PollingConfig{
		HealthInterval: parseDuration(v.GetString("HEALTH_POLL_INTERVAL"), 30*time.Second),
		StatsInterval:  parseDuration(v.GetString("STATS_POLL_INTERVAL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("HOST", DefaultHost)
	v.SetDefault("PORT", 8090)

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("NEXT_PUBLIC_API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("STATE_BACKEND", StateBackendFile)
	v.SetDefault("STATE_DIR", "./.console-state")
	v.SetDefault("AUTH_STORAGE_KEY", "auth-storage")
	v.SetDefault("HELP_STORAGE_KEY", "help-storage")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "attendance_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("HEALTH_POLL_INTERVAL", "30s")
	v.SetDefault("STATS_POLL_INTERVAL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// resolveBaseURL prefers the explicit key, then the legacy frontend variable.
func resolveBaseURL(primary, legacy string) string {
	for _, candidate := range []string{primary, legacy} {
		trimmed := strings.TrimRight(strings.TrimSpace(candidate), "/")
		if trimmed != "" {
			return trimmed
		}
	}
	return defaultAPIBaseURL
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
