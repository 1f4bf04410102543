package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	b, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return b, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

type countingSource struct {
	products   []domain.Product
	categories []string
	err        error

	mu    sync.Mutex
	calls map[string]int
}

func newCountingSource(products ...domain.Product) *countingSource {
	return &countingSource{
		products:   products,
		categories: []string{"electronics"},
		calls:      map[string]int{},
	}
}

func (s *countingSource) count(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *countingSource) FindAll(context.Context) ([]domain.Product, error) {
	s.count("FindAll")
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *countingSource) FindByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	s.count("FindByID")
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *countingSource) Categories(context.Context) ([]string, error) {
	s.count("Categories")
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func TestCachedSource_ReadsThrough(t *testing.T) {
	src := newCountingSource(domain.Product{ID: "1", Title: "TV", Price: 300, Category: "electronics"})
	cache := newMemoryCache()
	cached := NewCachedSource(src, cache, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		products, err := cached.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "TV", products[0].Title)

		categories, err := cached.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"electronics"}, categories)

		product, err := cached.FindByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.ProductID("1"), product.ID)
	}

	assert.Equal(t, 1, src.calls["FindAll"])
	assert.Equal(t, 1, src.calls["Categories"])
	assert.Equal(t, 1, src.calls["FindByID"])
	assert.Equal(t, DefaultCacheTTL, cache.ttls[cacheKeyProducts])
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	src := newCountingSource()
	src.err = errors.New("upstream down")
	cached := NewCachedSource(src, newMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := cached.FindAll(ctx)
	require.Error(t, err)

	src.err = nil
	products, err := cached.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 2, src.calls["FindAll"])

	_, err = cached.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCachedSource_CacheFailureFallsBack(t *testing.T) {
	src := newCountingSource(domain.Product{ID: "1"})
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cached := NewCachedSource(src, cache, time.Minute)

	products, err := cached.FindAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCachedSource_CorruptEntryIsIgnored(t *testing.T) {
	src := newCountingSource(domain.Product{ID: "1"})
	cache := newMemoryCache()
	cache.entries[cacheKeyProducts] = []byte("{not json")
	cached := NewCachedSource(src, cache, time.Minute)

	products, err := cached.FindAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, src.calls["FindAll"])
}

func TestCachedSource_Invalidate(t *testing.T) {
	src := newCountingSource(domain.Product{ID: "1"})
	cache := newMemoryCache()
	cache.entries["unrelated"] = []byte("keep")
	cached := NewCachedSource(src, cache, time.Minute)
	ctx := context.Background()

	_, err := cached.FindAll(ctx)
	require.NoError(t, err)
	_, err = cached.FindByID(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, cached.Invalidate(ctx))
	assert.Len(t, cache.entries, 1)

	_, err = cached.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls["FindAll"])
}
