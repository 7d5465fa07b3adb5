package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SHOPFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	cfg.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Upstream.BaseURL), "/")
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SHOPFRONT_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig describes the remote catalog API. BaseURL and APIKey are
// deliberately optional: an unconfigured gateway keeps serving the offline
// fallback catalog instead of refusing to boot.
type UpstreamConfig struct {
	BaseURL          string        `envconfig:"SHOPFRONT_UPSTREAM_BASE_URL"`
	APIKey           string        `envconfig:"SHOPFRONT_UPSTREAM_API_KEY"`
	ProductsEndpoint string        `envconfig:"SHOPFRONT_UPSTREAM_PRODUCTS_ENDPOINT" default:"/v1/products"`
	Timeout          time.Duration `envconfig:"SHOPFRONT_UPSTREAM_TIMEOUT" default:"10s"`
}

// CatalogConfig holds tunables for the filter and listing pipeline. The price
// ceiling is the single source of truth for the slider maximum, the sparse URL
// encoding boundary, and the maxPrice emission cutoff.
type CatalogConfig struct {
	PriceCeiling float64 `envconfig:"SHOPFRONT_CATALOG_PRICE_CEILING" default:"100"`
	PageSize     int     `envconfig:"SHOPFRONT_CATALOG_PAGE_SIZE" default:"12"`
	MaxPageSize  int     `envconfig:"SHOPFRONT_CATALOG_MAX_PAGE_SIZE" default:"100"`
}

func (c CatalogConfig) validate() error {
	if c.PriceCeiling <= 0 {
		return fmt.Errorf("catalog price ceiling must be positive, got %v", c.PriceCeiling)
	}
	if c.PageSize <= 0 || c.MaxPageSize < c.PageSize {
		return fmt.Errorf("invalid catalog page sizes: page_size=%d max=%d", c.PageSize, c.MaxPageSize)
	}
	return nil
}

// RedisConfig is optional; when URL and Address are both empty the listing
// cache is disabled and every request goes through the upstream pipeline.
type RedisConfig struct {
	URL          string        `envconfig:"SHOPFRONT_REDIS_URL"`
	Address      string        `envconfig:"SHOPFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
	ListingTTL   time.Duration `envconfig:"SHOPFRONT_REDIS_LISTING_TTL" default:"60s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}
