package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// ClearCartCommand represents the command to empty the cart
type ClearCartCommand struct {
	SessionID string
}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	carts store.Provider
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts store.Provider) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*domain.Summary, error) {
	cart, err := h.carts.Cart(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	summary := domain.Summarize(cart.ClearCart())
	return &summary, nil
}
