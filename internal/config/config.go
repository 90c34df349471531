package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Submission backends. Exactly one is wired into POST /api/guardar-seguridad.
const (
	BackendERP      = "erp"
	BackendDatabase = "database"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	DirectoryURL      string        `mapstructure:"DIRECTORY_URL"`
	TelegramBotURL    string        `mapstructure:"TELEGRAM_BOT_URL"`
	ERPURL            string        `mapstructure:"ERP_URL"`
	UpstreamTimeout   time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	SnapshotPath      string        `mapstructure:"SNAPSHOT_PATH"`
	SubmissionBackend string        `mapstructure:"SUBMISSION_BACKEND"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32         `mapstructure:"DB_MIN_CONNS"`
	DBSchema          string        `mapstructure:"DB_SCHEMA"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	BodyLimit         string        `mapstructure:"BODY_LIMIT"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"DIRECTORY_URL", "TELEGRAM_BOT_URL", "ERP_URL", "UPSTREAM_TIMEOUT",
	"SNAPSHOT_PATH", "SUBMISSION_BACKEND",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA",
	"CORS_ORIGINS", "BODY_LIMIT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// Load reads configuration from an optional .env file and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DIRECTORY_URL", "http://35.223.72.198:4001")
	v.SetDefault("TELEGRAM_BOT_URL", "http://35.223.72.198:8000")
	v.SetDefault("ERP_URL", "https://viacotur16-qa11-22388022.dev.odoo.com")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("SNAPSHOT_PATH", "preoperacional.json")
	v.SetDefault("SUBMISSION_BACKEND", BackendERP)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Missing .env is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) <= 1 {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = splitList(origins)
		}
	}
	cfg.SubmissionBackend = strings.ToLower(strings.TrimSpace(cfg.SubmissionBackend))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesDatabase reports whether submissions are persisted to PostgreSQL
// instead of being forwarded to the ERP.
func (c *Config) UsesDatabase() bool {
	return c.SubmissionBackend == BackendDatabase
}

// Validate checks that the configuration can serve requests.
func (c *Config) Validate() error {
	switch c.SubmissionBackend {
	case BackendERP, BackendDatabase:
	default:
		return fmt.Errorf("SUBMISSION_BACKEND must be %q or %q, got %q", BackendERP, BackendDatabase, c.SubmissionBackend)
	}

	if c.UsesDatabase() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when SUBMISSION_BACKEND is %q", BackendDatabase)
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}

	for name, raw := range map[string]string{
		"DIRECTORY_URL":    c.DirectoryURL,
		"TELEGRAM_BOT_URL": c.TelegramBotURL,
		"ERP_URL":          c.ERPURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns)
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.DBMinConns)
	}

	return nil
}
