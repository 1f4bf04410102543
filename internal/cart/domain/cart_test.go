package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items() []CartItem {
	return []CartItem{
		{ID: "1", Title: "Shirt", Price: decimal.RequireFromString("0.10"), Quantity: 3},
		{ID: "2", Title: "Ring", Price: decimal.RequireFromString("0.20"), Quantity: 1},
	}
}

func TestDerivedValues(t *testing.T) {
	lines := items()

	assert.Equal(t, 4, TotalQuantity(lines))
	assert.Equal(t, 2, ItemCount(lines))
	assert.True(t, TotalPrice(lines).Equal(decimal.RequireFromString("0.5")), "decimal sums are exact")
	assert.True(t, IsInCart(lines, "2"))
	assert.False(t, IsInCart(lines, "3"))
}

func TestDerivedValues_Empty(t *testing.T) {
	assert.Zero(t, TotalQuantity(nil))
	assert.Zero(t, ItemCount(nil))
	assert.True(t, TotalPrice(nil).IsZero())
	assert.False(t, IsInCart(nil, "1"))
}

func TestSummarize(t *testing.T) {
	s := Summarize(State{Items: items(), IsDrawerOpen: true})

	assert.Equal(t, 4, s.TotalQuantity)
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, "0.5", s.TotalPrice.String())
	assert.True(t, s.IsDrawerOpen)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"isDrawerOpen":true`)
	assert.Contains(t, string(b), `"totalPrice":"0.5"`)
}

func TestAddItemPayload_Validate(t *testing.T) {
	assert.NoError(t, AddItemPayload{ID: "1", Price: decimal.Zero}.Validate())
	assert.ErrorIs(t, AddItemPayload{Price: decimal.NewFromInt(1)}.Validate(), ErrInvalidItem)
	assert.ErrorIs(t, AddItemPayload{ID: "1", Price: decimal.NewFromInt(-1)}.Validate(), ErrNegativePrice)
}

func TestAddItemPayload_AcceptsNumericPrice(t *testing.T) {
	var p AddItemPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","title":"Lamp","price":19.99}`), &p))

	assert.Equal(t, "19.99", p.Price.String())
}

func TestState_Clone(t *testing.T) {
	s := State{Items: items()}
	c := s.Clone()
	c.Items[0].Quantity = 99

	assert.Equal(t, 3, s.Items[0].Quantity)
}
