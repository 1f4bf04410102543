package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// DefaultCacheTTL matches the catalog revalidation window
const DefaultCacheTTL = time.Hour

const (
	cacheKeyPrefix     = "storefront:catalog:"
	cacheKeyProducts   = cacheKeyPrefix + "products"
	cacheKeyCategories = cacheKeyPrefix + "categories"
	cacheKeyProduct    = cacheKeyPrefix + "product:"
)

// ErrCacheMiss is returned by a Cache when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// Cache is the byte store behind CachedSource
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// RedisCache implements Cache on a Redis client
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix removes every key under prefix and reports how many were found
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// CachedSource keeps catalog reads in a Cache for ttl. Cache failures
// degrade to a direct read; they never fail the request.
type CachedSource struct {
	next  domain.ProductSource
	cache Cache
	ttl   time.Duration
}

func NewCachedSource(next domain.ProductSource, cache Cache, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

func (s *CachedSource) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if s.load(ctx, cacheKeyProducts, &products) {
		return products, nil
	}

	products, err := s.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyProducts, products)
	return products, nil
}

func (s *CachedSource) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	key := cacheKeyProduct + id.String()

	var product domain.Product
	if s.load(ctx, key, &product) {
		return &product, nil
	}

	found, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, found)
	return found, nil
}

func (s *CachedSource) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.load(ctx, cacheKeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.next.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// Invalidate drops every cached catalog entry
func (s *CachedSource) Invalidate(ctx context.Context) error {
	n, err := s.cache.DeletePrefix(ctx, cacheKeyPrefix)
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Int("count", n).
		Str("prefix", cacheKeyPrefix).
		Msg("Catalog cache invalidated")
	return nil
}

func (s *CachedSource) load(ctx context.Context, key string, out interface{}) bool {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Catalog cache read failed")
		}
		cacheRequests.WithLabelValues(metricKey(key), "miss").Inc()
		return false
	}

	if err := json.Unmarshal(b, out); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Discarding undecodable cache entry")
		cacheRequests.WithLabelValues(metricKey(key), "miss").Inc()
		return false
	}

	cacheRequests.WithLabelValues(metricKey(key), "hit").Inc()
	logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
	return true
}

func (s *CachedSource) store(ctx context.Context, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to encode cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache catalog entry")
		return
	}
	logger.Debug(ctx).Str("cache_key", key).Dur("ttl", s.ttl).Int("size", len(b)).Msg("Catalog entry cached")
}

// metricKey keeps per-product keys out of the label set
func metricKey(key string) string {
	switch key {
	case cacheKeyProducts:
		return "products"
	case cacheKeyCategories:
		return "categories"
	default:
		return "product"
	}
}
