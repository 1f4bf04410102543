package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ErrInvalidProductID is returned for a blank id
var ErrInvalidProductID = errors.New("invalid product id")

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	source domain.ProductSource
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(source domain.ProductSource) *GetProductHandler {
	return &GetProductHandler{source: source}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	id := strings.TrimSpace(q.ID)
	if id == "" {
		return nil, ErrInvalidProductID
	}

	product, err := h.source.FindByID(ctx, domain.ProductID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return product, nil
}
