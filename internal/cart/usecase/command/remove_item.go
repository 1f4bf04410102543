package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// RemoveItemCommand represents the command to drop a cart line
type RemoveItemCommand struct {
	SessionID string
	ItemID    string
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	carts store.Provider
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts store.Provider) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command. Removing an absent line is not an error.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Summary, error) {
	cart, err := h.carts.Cart(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	summary := domain.Summarize(cart.RemoveItem(cmd.ItemID))
	return &summary, nil
}
