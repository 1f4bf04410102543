package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/engine"
	"github.com/tair/storefront/internal/catalog/filter"
	"github.com/tair/storefront/pkg/logger"
)

// SearchPublisher receives every executed catalog query
type SearchPublisher interface {
	PublishCatalogSearched(ctx context.Context, criteria domain.Criteria, total int) error
}

// ListProductsQuery represents the query to list one page of the catalog
type ListProductsQuery struct {
	Criteria domain.Criteria
	Path     string // page the location is built for, "/products" when empty
}

// ProductListing is a result page plus the criteria that produced it
type ProductListing struct {
	domain.QueryResult
	Criteria      domain.Criteria `json:"criteria"`
	Location      string          `json:"location"`
	ActiveFilters int             `json:"activeFilters"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	source    domain.ProductSource
	publisher SearchPublisher
}

// NewListProductsHandler creates a new list products handler; publisher may be nil
func NewListProductsHandler(source domain.ProductSource, publisher SearchPublisher) *ListProductsHandler {
	return &ListProductsHandler{source: source, publisher: publisher}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ProductListing, error) {
	criteria := filter.Normalize(q.Criteria)
	path := q.Path
	if path == "" {
		path = "/products"
	}

	products, err := h.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := engine.Apply(products, criteria)

	if h.publisher != nil {
		if err := h.publisher.PublishCatalogSearched(ctx, criteria, result.Total); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to publish catalog search")
		}
	}

	return &ProductListing{
		QueryResult:   result,
		Criteria:      criteria,
		Location:      filter.Location(path, criteria),
		ActiveFilters: filter.ActiveFilterCount(criteria),
	}, nil
}
