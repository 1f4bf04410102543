package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// GetCartQuery represents the query to read a session cart
type GetCartQuery struct {
	SessionID string
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	carts store.Provider
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts store.Provider) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*domain.Summary, error) {
	cart, err := h.carts.Cart(ctx, q.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	summary := domain.Summarize(cart.State())
	return &summary, nil
}
