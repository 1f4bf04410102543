package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// ToggleDrawerCommand represents the command to open or close the cart drawer
type ToggleDrawerCommand struct {
	SessionID string
	Open      bool
}

// ToggleDrawerHandler handles toggle drawer command
type ToggleDrawerHandler struct {
	carts store.Provider
}

// NewToggleDrawerHandler creates a new toggle drawer handler
func NewToggleDrawerHandler(carts store.Provider) *ToggleDrawerHandler {
	return &ToggleDrawerHandler{carts: carts}
}

// Handle executes the toggle drawer command
func (h *ToggleDrawerHandler) Handle(ctx context.Context, cmd ToggleDrawerCommand) (*domain.Summary, error) {
	cart, err := h.carts.Cart(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	var state domain.State
	if cmd.Open {
		state = cart.OpenDrawer()
	} else {
		state = cart.CloseDrawer()
	}

	summary := domain.Summarize(state)
	return &summary, nil
}
