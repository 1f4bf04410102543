package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

var errUnknownSession = errors.New("unknown session")

type carts map[string]*store.Store

func (c carts) Cart(_ context.Context, sessionID string) (*store.Store, error) {
	cart, ok := c[sessionID]
	if !ok {
		return nil, errUnknownSession
	}
	return cart, nil
}

func lamp() domain.AddItemPayload {
	return domain.AddItemPayload{ID: "lamp", Title: "Lamp", Price: decimal.RequireFromString("12.50")}
}

func TestCartCommands_Flow(t *testing.T) {
	provider := carts{"s1": store.New()}
	ctx := context.Background()

	add := NewAddItemHandler(provider)
	_, err := add.Handle(ctx, AddItemCommand{SessionID: "s1", Item: lamp()})
	require.NoError(t, err)
	summary, err := add.Handle(ctx, AddItemCommand{SessionID: "s1", Item: lamp()})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalQuantity)
	assert.Equal(t, "25", summary.TotalPrice.String())

	summary, err = NewUpdateQuantityHandler(provider).Handle(ctx, UpdateQuantityCommand{SessionID: "s1", ItemID: "lamp", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalQuantity)

	summary, err = NewToggleDrawerHandler(provider).Handle(ctx, ToggleDrawerCommand{SessionID: "s1", Open: true})
	require.NoError(t, err)
	assert.True(t, summary.IsDrawerOpen)

	summary, err = NewClearCartHandler(provider).Handle(ctx, ClearCartCommand{SessionID: "s1"})
	require.NoError(t, err)
	assert.Zero(t, summary.ItemCount)
	assert.True(t, summary.IsDrawerOpen)

	summary, err = NewToggleDrawerHandler(provider).Handle(ctx, ToggleDrawerCommand{SessionID: "s1"})
	require.NoError(t, err)
	assert.False(t, summary.IsDrawerOpen)
}

func TestRemoveItemHandler(t *testing.T) {
	provider := carts{"s1": store.New()}
	ctx := context.Background()
	provider["s1"].AddItem(lamp())

	summary, err := NewRemoveItemHandler(provider).Handle(ctx, RemoveItemCommand{SessionID: "s1", ItemID: "lamp"})
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	_, err = NewRemoveItemHandler(provider).Handle(ctx, RemoveItemCommand{SessionID: "s1", ItemID: "lamp"})
	assert.NoError(t, err)
}

func TestAddItemHandler_Validation(t *testing.T) {
	provider := carts{"s1": store.New()}

	_, err := NewAddItemHandler(provider).Handle(context.Background(), AddItemCommand{SessionID: "s1"})

	assert.ErrorIs(t, err, domain.ErrInvalidItem)
	assert.Empty(t, provider["s1"].State().Items)
}

func TestCommands_UnknownSession(t *testing.T) {
	provider := carts{}
	ctx := context.Background()

	_, err := NewAddItemHandler(provider).Handle(ctx, AddItemCommand{SessionID: "x", Item: lamp()})
	assert.ErrorIs(t, err, errUnknownSession)

	_, err = NewClearCartHandler(provider).Handle(ctx, ClearCartCommand{SessionID: "x"})
	assert.ErrorIs(t, err, errUnknownSession)
}
