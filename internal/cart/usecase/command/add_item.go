package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// AddItemCommand represents the command to put one unit of a product in the cart
type AddItemCommand struct {
	SessionID string
	Item      domain.AddItemPayload
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	carts store.Provider
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts store.Provider) *AddItemHandler {
	return &AddItemHandler{carts: carts}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.Summary, error) {
	if err := cmd.Item.Validate(); err != nil {
		return nil, err
	}

	cart, err := h.carts.Cart(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	summary := domain.Summarize(cart.AddItem(cmd.Item))
	return &summary, nil
}
