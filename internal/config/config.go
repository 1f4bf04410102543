package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

// Catalog backends
const (
	CatalogRemote   = "remote"
	CatalogPostgres = "postgres"
)

// Config is the storefront service configuration, read from the environment
type Config struct {
	ServiceName    string  `envconfig:"OTEL_SERVICE_NAME" default:"storefront-service"`
	ServiceVersion string  `envconfig:"SERVICE_VERSION" default:"1.0.0"`
	Environment    string  `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort       string  `envconfig:"HTTP_PORT" default:"8080"`
	GRPCPort       string  `envconfig:"GRPC_PORT" default:"9090"`
	JaegerEndpoint string  `envconfig:"JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`
	TraceSampling  float64 `envconfig:"TRACE_SAMPLE_RATIO" default:"1"`

	CatalogBackend        string        `envconfig:"CATALOG_BACKEND" default:"remote"`
	CatalogURL            string        `envconfig:"CATALOG_API_URL" default:"https://fakestoreapi.com"`
	CatalogTimeout        time.Duration `envconfig:"CATALOG_TIMEOUT" default:"5s"`
	CatalogMaxFailures    int           `envconfig:"CATALOG_MAX_FAILURES" default:"5"`
	CatalogBreakerTimeout time.Duration `envconfig:"CATALOG_BREAKER_TIMEOUT" default:"30s"`
	CatalogSeed           bool          `envconfig:"CATALOG_SEED" default:"false"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"storefrontdb"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"1h"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaGroupID string   `envconfig:"KAFKA_GROUP_ID" default:"storefront-service"`

	FilterPath    string        `envconfig:"FILTER_PATH" default:"/products"`
	DebounceWait  time.Duration `envconfig:"FILTER_DEBOUNCE" default:"350ms"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

var (
	config  Config
	loadErr error
	once    sync.Once
)

// Load reads an optional .env file and the environment once per process
func Load() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			logger.Logger.Warn().Err(err).Msg("Error loading .env file (but continuing)")
		}

		loadErr = Process(&config)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return &config, nil
}

// Process fills cfg from the environment and validates it
func Process(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process configuration: %w", err)
	}
	return cfg.Validate()
}

// Validate checks values that have no safe fallback
func (c *Config) Validate() error {
	c.CatalogBackend = strings.ToLower(strings.TrimSpace(c.CatalogBackend))
	switch c.CatalogBackend {
	case CatalogRemote:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_API_URL is required for the remote catalog")
		}
	case CatalogPostgres:
	default:
		return fmt.Errorf("unknown CATALOG_BACKEND %q", c.CatalogBackend)
	}

	if !strings.HasPrefix(c.FilterPath, "/") {
		return fmt.Errorf("FILTER_PATH must start with /")
	}
	return nil
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Database returns the Postgres connection settings
func (c *Config) Database() database.Config {
	return database.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

// Tracing returns the tracer settings
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		JaegerEndpoint: c.JaegerEndpoint,
		SampleRatio:    c.TraceSampling,
	}
}
