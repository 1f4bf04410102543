package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// UpdateQuantityCommand represents the command to change a line quantity
type UpdateQuantityCommand struct {
	SessionID string
	ItemID    string
	Quantity  int
}

// UpdateQuantityHandler handles update quantity command
type UpdateQuantityHandler struct {
	carts store.Provider
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(carts store.Provider) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{carts: carts}
}

// Handle executes the update quantity command. Quantities below 1 become 1.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Summary, error) {
	cart, err := h.carts.Cart(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	summary := domain.Summarize(cart.UpdateQuantity(cmd.ItemID, cmd.Quantity))
	return &summary, nil
}
