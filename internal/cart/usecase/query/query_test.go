package query

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

type singleCart struct {
	id   string
	cart *store.Store
}

func (s singleCart) Cart(_ context.Context, sessionID string) (*store.Store, error) {
	if sessionID != s.id {
		return nil, errors.New("unknown session")
	}
	return s.cart, nil
}

func TestGetCartHandler(t *testing.T) {
	cart := store.New()
	cart.AddItem(domain.AddItemPayload{ID: "a", Price: decimal.RequireFromString("1.10")})
	cart.AddItem(domain.AddItemPayload{ID: "b", Price: decimal.RequireFromString("2.20")})
	cart.UpdateQuantity("b", 3)
	provider := singleCart{id: "s1", cart: cart}

	summary, err := NewGetCartHandler(provider).Handle(context.Background(), GetCartQuery{SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 4, summary.TotalQuantity)
	assert.Equal(t, "7.7", summary.TotalPrice.String())

	_, err = NewGetCartHandler(provider).Handle(context.Background(), GetCartQuery{SessionID: "s2"})
	assert.Error(t, err)
}

func TestIsInCartHandler(t *testing.T) {
	cart := store.New()
	cart.AddItem(domain.AddItemPayload{ID: "a"})
	h := NewIsInCartHandler(singleCart{id: "s1", cart: cart})
	ctx := context.Background()

	in, err := h.Handle(ctx, IsInCartQuery{SessionID: "s1", ItemID: "a"})
	require.NoError(t, err)
	assert.True(t, in)

	in, err = h.Handle(ctx, IsInCartQuery{SessionID: "s1", ItemID: "z"})
	require.NoError(t, err)
	assert.False(t, in)
}
