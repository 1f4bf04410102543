package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
)

type stubSource struct {
	products   []domain.Product
	categories []string
	err        error
}

func (s *stubSource) FindAll(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubSource) FindByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubSource) Categories(context.Context) ([]string, error) {
	return s.categories, s.err
}

type recordedSearch struct {
	criteria domain.Criteria
	total    int
}

type stubPublisher struct {
	searches []recordedSearch
	err      error
}

func (p *stubPublisher) PublishCatalogSearched(_ context.Context, c domain.Criteria, total int) error {
	p.searches = append(p.searches, recordedSearch{criteria: c, total: total})
	return p.err
}

func catalog() *stubSource {
	return &stubSource{
		products: []domain.Product{
			{ID: "1", Title: "Red Shirt", Price: 25, Category: "men's clothing"},
			{ID: "2", Title: "Blue Shirt", Price: 15, Category: "men's clothing"},
			{ID: "3", Title: "Gold Ring", Price: 500, Category: "jewelery"},
			{ID: "4", Title: "Laptop", Price: 999.99, Category: "electronics"},
		},
		categories: []string{"electronics", "jewelery", "men's clothing", "women's  clothing"},
	}
}

func TestListProducts_AppliesCriteria(t *testing.T) {
	publisher := &stubPublisher{}
	h := NewListProductsHandler(catalog(), publisher)

	c := domain.DefaultCriteria()
	c.Search = "shirt"
	c.Sort = domain.SortPriceAsc
	listing, err := h.Handle(context.Background(), ListProductsQuery{Criteria: c})
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, domain.ProductID("2"), listing.Items[0].ID)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, 1, listing.CurrentPage)
	assert.Equal(t, 1, listing.TotalPages)
	assert.Equal(t, "/products?search=shirt&sort=price_asc", listing.Location)
	assert.Equal(t, 2, listing.ActiveFilters)

	require.Len(t, publisher.searches, 1)
	assert.Equal(t, 2, publisher.searches[0].total)
	assert.Equal(t, "shirt", publisher.searches[0].criteria.Search)
}

func TestListProducts_NormalizesCriteria(t *testing.T) {
	h := NewListProductsHandler(catalog(), nil)

	listing, err := h.Handle(context.Background(), ListProductsQuery{
		Criteria: domain.Criteria{Page: 40, Limit: 0, Sort: "bogus"},
		Path:     "/products/category/jewelery",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultLimit, listing.Criteria.Limit)
	assert.Equal(t, domain.SortDefault, listing.Criteria.Sort)
	assert.Equal(t, 1, listing.CurrentPage, "page is clamped to the last page")
	assert.Equal(t, "/products/category/jewelery?page=40", listing.Location)
}

func TestListProducts_PublisherFailureIsIgnored(t *testing.T) {
	h := NewListProductsHandler(catalog(), &stubPublisher{err: errors.New("broker down")})

	listing, err := h.Handle(context.Background(), ListProductsQuery{Criteria: domain.DefaultCriteria()})

	require.NoError(t, err)
	assert.Equal(t, 4, listing.Total)
}

func TestListProducts_SourceFailure(t *testing.T) {
	upstream := errors.New("upstream")
	h := NewListProductsHandler(&stubSource{err: upstream}, nil)

	_, err := h.Handle(context.Background(), ListProductsQuery{Criteria: domain.DefaultCriteria()})

	assert.ErrorIs(t, err, upstream)
}

func TestGetProduct(t *testing.T) {
	h := NewGetProductHandler(catalog())
	ctx := context.Background()

	p, err := h.Handle(ctx, GetProductQuery{ID: " 3 "})
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring", p.Title)

	_, err = h.Handle(ctx, GetProductQuery{ID: "42"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = h.Handle(ctx, GetProductQuery{})
	assert.ErrorIs(t, err, ErrInvalidProductID)
}

func TestListCategories(t *testing.T) {
	h := NewListCategoriesHandler(catalog())

	categories, err := h.Handle(context.Background(), ListCategoriesQuery{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{
		{ID: "category-1", Name: "Electronics", Slug: "electronics"},
		{ID: "category-2", Name: "Jewelery", Slug: "jewelery"},
		{ID: "category-3", Name: "Men's Clothing", Slug: "men's-clothing"},
		{ID: "category-4", Name: "Women's  Clothing", Slug: "women's-clothing"},
	}, categories)
}

func TestListCategories_Resolve(t *testing.T) {
	h := NewListCategoriesHandler(catalog())
	ctx := context.Background()

	name, err := h.Resolve(ctx, "Men's-Clothing")
	require.NoError(t, err)
	assert.Equal(t, "men's clothing", name)

	name, err = h.Resolve(ctx, "garden")
	require.NoError(t, err)
	assert.Equal(t, "garden", name)
}

func TestGetStats(t *testing.T) {
	h := NewGetStatsHandler(catalog())

	stats, err := h.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalCategories)
	assert.InDelta(t, 384.9975, stats.AveragePrice, 1e-9)
	assert.Equal(t, domain.PriceRange{Min: 15, Max: 999.99}, stats.PriceRange)
}

func TestGetStats_EmptyCatalog(t *testing.T) {
	h := NewGetStatsHandler(&stubSource{})

	stats, err := h.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, domain.CatalogStats{}, *stats)
}
