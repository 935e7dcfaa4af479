// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Gemini        GeminiConfig        `mapstructure:"gemini"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Schema          string        `mapstructure:"schema"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// GeminiConfig is read at startup but the API key is only checked when the
// first extraction runs.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig describes the optional R2 bucket uploads are archived to.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

// Enabled reports whether upload archiving is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type ObservabilityConfig struct {
	LogLevel      string  `mapstructure:"log_level"`
	LogFormat     string  `mapstructure:"log_format"`
	TraceEnabled  bool    `mapstructure:"trace_enabled"`
	TraceEndpoint string  `mapstructure:"trace_endpoint"`
	SampleRate    float64 `mapstructure:"sample_rate"`
}

// env var names per key; the first name wins when several are set.
var envBindings = map[string][]string{
	"app.env":                      {"APP_ENV"},
	"server.addr":                  {"HTTP_ADDR"},
	"server.read_timeout":          {"HTTP_READ_TIMEOUT"},
	"server.shutdown_timeout":      {"HTTP_SHUTDOWN_TIMEOUT"},
	"server.allowed_origins":       {"CORS_ALLOWED_ORIGINS"},
	"database.url":                 {"DATABASE_URL", "POSTGRES_URL"},
	"database.schema":              {"DB_SCHEMA"},
	"database.max_conns":           {"DB_MAX_CONNS"},
	"database.min_conns":           {"DB_MIN_CONNS"},
	"database.max_conn_lifetime":   {"DB_MAX_CONN_LIFETIME"},
	"gemini.api_key":               {"GOOGLE_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"gemini.model":                 {"GEMINI_MODEL"},
	"gemini.base_url":              {"GEMINI_BASE_URL"},
	"gemini.timeout":               {"GEMINI_TIMEOUT"},
	"storage.endpoint":             {"R2_ENDPOINT"},
	"storage.access_key":           {"R2_ACCESS_KEY"},
	"storage.secret_key":           {"R2_SECRET_KEY"},
	"storage.bucket":               {"R2_BUCKET_NAME"},
	"observability.log_level":      {"LOG_LEVEL"},
	"observability.log_format":     {"LOG_FORMAT"},
	"observability.trace_enabled":  {"OTEL_ENABLED"},
	"observability.trace_endpoint": {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"observability.sample_rate":    {"OTEL_SAMPLE_RATE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "homechef-menu-extractor")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", "0s")

	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")
	v.SetDefault("observability.trace_enabled", false)
	v.SetDefault("observability.trace_endpoint", "localhost:4317")
	v.SetDefault("observability.sample_rate", 1.0)
}

// Load reads .env (outside production) and the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.Storage.Enabled() && (c.Storage.Endpoint == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return errors.New("R2_BUCKET_NAME is set but R2_ENDPOINT, R2_ACCESS_KEY or R2_SECRET_KEY is missing")
	}
	return nil
}
