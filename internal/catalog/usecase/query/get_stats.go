package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	source domain.ProductSource
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(source domain.ProductSource) *GetStatsHandler {
	return &GetStatsHandler{source: source}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*domain.CatalogStats, error) {
	products, err := h.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &domain.CatalogStats{TotalProducts: len(products)}
	if len(products) == 0 {
		return stats, nil
	}

	var totalPrice float64
	categories := make(map[string]bool)
	stats.PriceRange = domain.PriceRange{Min: products[0].Price, Max: products[0].Price}

	for _, product := range products {
		totalPrice += product.Price
		if product.Price < stats.PriceRange.Min {
			stats.PriceRange.Min = product.Price
		}
		if product.Price > stats.PriceRange.Max {
			stats.PriceRange.Max = product.Price
		}
		if product.Category != "" {
			categories[product.Category] = true
		}
	}

	stats.AveragePrice = totalPrice / float64(len(products))
	stats.TotalCategories = len(categories)
	return stats, nil
}
