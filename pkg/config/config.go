package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
)

const (
	EnvPrefix = "PHIN"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	Square    SquareConfig
	Store     StoreConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
	Insights  InsightsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	// shopspring marshals decimals as strings by default; the dashboard
	// contract requires raw JSON numbers next to the formatted strings.
	decimal.MarshalJSONWithoutQuotes = true
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHIN_APP_ENV" default:"development"`
	Port         string `envconfig:"PHIN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PHIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHIN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SquareConfig struct {
	AccessToken string        `envconfig:"PHIN_SQUARE_ACCESS_TOKEN" required:"true"`
	Env         string        `envconfig:"PHIN_SQUARE_ENV" default:"sandbox"`
	Version     string        `envconfig:"PHIN_SQUARE_VERSION" default:"2025-01-23"`
	Timeout     time.Duration `envconfig:"PHIN_SQUARE_TIMEOUT" default:"30s"`
	PageLimit   int           `envconfig:"PHIN_SQUARE_PAGE_LIMIT" default:"100"`
	MaxRetries  int           `envconfig:"PHIN_SQUARE_MAX_RETRIES" default:"2"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type StoreConfig struct {
	// Timezone is the IANA zone every calendar period resolves in.
	Timezone string `envconfig:"PHIN_STORE_TIMEZONE" default:"America/Chicago"`
}

func (s StoreConfig) validate() error {
	if strings.TrimSpace(s.Timezone) == "" {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "store timezone is required")
	}
	return nil
}

type DashboardConfig struct {
	Passcode       string   `envconfig:"PHIN_DASHBOARD_PASSCODE"`
	AllowedOrigins []string `envconfig:"PHIN_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHIN_REDIS_URL"`
	PoolSize     int           `envconfig:"PHIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHIN_REDIS_WRITE_TIMEOUT" default:"5s"`

	LocationCacheTTL time.Duration `envconfig:"PHIN_LOCATION_CACHE_TTL" default:"5m"`
}

// Enabled reports whether a Redis cache was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type InsightsConfig struct {
	APIKey  string        `envconfig:"PHIN_INSIGHTS_API_KEY"`
	BaseURL string        `envconfig:"PHIN_INSIGHTS_BASE_URL" default:"https://api.openai.com/v1"`
	Model   string        `envconfig:"PHIN_INSIGHTS_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"PHIN_INSIGHTS_TIMEOUT" default:"15s"`
}

// Enabled reports whether the text-generation collaborator is configured.
func (i InsightsConfig) Enabled() bool {
	return strings.TrimSpace(i.APIKey) != ""
}
