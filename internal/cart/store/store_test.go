package store

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/domain"
)

func payload(id, price string) domain.AddItemPayload {
	return domain.AddItemPayload{ID: id, Title: "item " + id, Price: decimal.RequireFromString(price)}
}

func TestStore_NewIsEmpty(t *testing.T) {
	s := New().State()

	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
	assert.False(t, s.IsDrawerOpen)
}

func TestStore_AddSameItemTwice(t *testing.T) {
	cart := New()

	cart.AddItem(domain.AddItemPayload{ID: "p1", Title: "Lamp", Price: decimal.NewFromInt(10)})
	state := cart.AddItem(domain.AddItemPayload{ID: "p1", Title: "Lamp", Price: decimal.NewFromInt(10)})

	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 2, domain.TotalQuantity(state.Items))
	assert.True(t, domain.TotalPrice(state.Items).Equal(decimal.NewFromInt(20)))
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	cart := New()
	cart.AddItem(payload("b", "1"))
	cart.AddItem(payload("a", "1"))
	state := cart.AddItem(payload("b", "1"))

	require.Len(t, state.Items, 2)
	assert.Equal(t, "b", state.Items[0].ID)
	assert.Equal(t, "a", state.Items[1].ID)
}

func TestStore_UpdateQuantityClamps(t *testing.T) {
	cart := New()
	cart.AddItem(payload("p1", "5"))

	state := cart.UpdateQuantity("p1", 0)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)

	state = cart.UpdateQuantity("p1", -7)
	assert.Equal(t, 1, state.Items[0].Quantity)

	state = cart.UpdateQuantity("p1", 6)
	assert.Equal(t, 6, state.Items[0].Quantity)
}

func TestStore_UpdateQuantityUnknownID(t *testing.T) {
	cart := New()
	cart.AddItem(payload("p1", "5"))

	state := cart.UpdateQuantity("nope", 3)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestStore_RemoveItem(t *testing.T) {
	cart := New()
	cart.AddItem(payload("p1", "1"))
	cart.AddItem(payload("p2", "1"))
	cart.AddItem(payload("p3", "1"))

	state := cart.RemoveItem("p2")
	assert.Equal(t, []string{"p1", "p3"}, ids(state))

	state = cart.RemoveItem("missing")
	assert.Equal(t, []string{"p1", "p3"}, ids(state))
}

func TestStore_ClearCartKeepsDrawer(t *testing.T) {
	cart := New()
	cart.AddItem(payload("p1", "1"))
	cart.OpenDrawer()

	state := cart.ClearCart()

	assert.Empty(t, state.Items)
	assert.True(t, state.IsDrawerOpen)
}

func TestStore_DrawerIsIdempotent(t *testing.T) {
	cart := New()

	assert.True(t, cart.OpenDrawer().IsDrawerOpen)
	assert.True(t, cart.OpenDrawer().IsDrawerOpen)
	assert.False(t, cart.CloseDrawer().IsDrawerOpen)
	assert.False(t, cart.CloseDrawer().IsDrawerOpen)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	cart := New()
	snapshot := cart.AddItem(payload("p1", "1"))

	snapshot.Items[0].Quantity = 50
	cart.AddItem(payload("p2", "1"))

	assert.Equal(t, 1, cart.State().Items[0].Quantity)
	assert.Len(t, snapshot.Items, 1)
}

// Any sequence of operations keeps one line per id, quantities of at least 1
// and a total price equal to the sum over lines.
func TestStore_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cart := New()
	ids := []string{"a", "b", "c", "d"}
	prices := map[string]decimal.Decimal{
		"a": decimal.RequireFromString("0.1"),
		"b": decimal.RequireFromString("19.99"),
		"c": decimal.RequireFromString("3"),
		"d": decimal.RequireFromString("0.01"),
	}

	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(5) {
		case 0, 1:
			cart.AddItem(domain.AddItemPayload{ID: id, Price: prices[id]})
		case 2:
			cart.RemoveItem(id)
		case 3:
			cart.UpdateQuantity(id, rng.Intn(10)-3)
		case 4:
			if rng.Intn(10) == 0 {
				cart.ClearCart()
			}
		}

		state := cart.State()
		seen := map[string]bool{}
		want := decimal.Zero
		for _, item := range state.Items {
			require.False(t, seen[item.ID], "duplicate line %s", item.ID)
			seen[item.ID] = true
			require.GreaterOrEqual(t, item.Quantity, 1)
			want = want.Add(prices[item.ID].Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		require.True(t, want.Equal(domain.TotalPrice(state.Items)))
		require.Equal(t, len(state.Items), domain.ItemCount(state.Items))
	}
}

func TestStore_ConcurrentAdds(t *testing.T) {
	cart := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddItem(payload("p1", "2"))
		}()
	}
	wg.Wait()

	state := cart.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 50, state.Items[0].Quantity)
}

func ids(s domain.State) []string {
	out := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		out = append(out, item.ID)
	}
	return out
}
