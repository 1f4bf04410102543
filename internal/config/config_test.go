package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, Process(&cfg))

	assert.Equal(t, "storefront-service", cfg.ServiceName)
	assert.Equal(t, CatalogRemote, cfg.CatalogBackend)
	assert.Equal(t, "https://fakestoreapi.com", cfg.CatalogURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 350*time.Millisecond, cfg.DebounceWait)
	assert.Equal(t, "/products", cfg.FilterPath)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.CatalogSeed)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.IsDevelopment())
}

func TestProcess_FromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", " Postgres ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("FILTER_DEBOUNCE", "500ms")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CATALOG_SEED", "true")

	var cfg Config
	require.NoError(t, Process(&cfg))

	assert.Equal(t, CatalogPostgres, cfg.CatalogBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceWait)
	assert.Equal(t, "shop", cfg.Database().DBName)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.CatalogSeed)
}

func TestProcess_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"CATALOG_BACKEND": "mongo"}},
		{name: "relative filter path", env: map[string]string{"FILTER_PATH": "products"}},
		{name: "bad duration", env: map[string]string{"SESSION_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var cfg Config
			assert.Error(t, Process(&cfg))
		})
	}
}

func TestConfig_Tracing(t *testing.T) {
	cfg := Config{ServiceName: "svc", ServiceVersion: "2", JaegerEndpoint: "http://j", TraceSampling: 0.5}

	tc := cfg.Tracing()
	assert.Equal(t, "svc", tc.ServiceName)
	assert.Equal(t, 0.5, tc.SampleRatio)
}
