package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// IsInCartQuery asks whether a product already has a cart line
type IsInCartQuery struct {
	SessionID string
	ItemID    string
}

// IsInCartHandler handles is in cart query
type IsInCartHandler struct {
	carts store.Provider
}

// NewIsInCartHandler creates a new is in cart handler
func NewIsInCartHandler(carts store.Provider) *IsInCartHandler {
	return &IsInCartHandler{carts: carts}
}

// Handle executes the is in cart query
func (h *IsInCartHandler) Handle(ctx context.Context, q IsInCartQuery) (bool, error) {
	cart, err := h.carts.Cart(ctx, q.SessionID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve cart: %w", err)
	}

	return domain.IsInCart(cart.State().Items, q.ItemID), nil
}
