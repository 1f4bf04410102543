package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidItem is returned for an add payload without an id
	ErrInvalidItem = errors.New("cart item id is required")
	// ErrNegativePrice is returned for an add payload priced below zero
	ErrNegativePrice = errors.New("price cannot be negative")
)

// CartItem is one line of the cart. Quantity is always at least 1.
type CartItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// Subtotal is price times quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddItemPayload is a cart item without a quantity
type AddItemPayload struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Validate checks the payload can become a cart line
func (p AddItemPayload) Validate() error {
	if p.ID == "" {
		return ErrInvalidItem
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// State is the whole cart: its lines in insertion order and the drawer flag
type State struct {
	Items        []CartItem `json:"items"`
	IsDrawerOpen bool       `json:"isDrawerOpen"`
}

// Clone returns a copy that shares nothing with s
func (s State) Clone() State {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsDrawerOpen: s.IsDrawerOpen}
}

// TotalQuantity sums the quantities of all lines
func TotalQuantity(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price times quantity over all lines
func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount is the number of distinct lines
func ItemCount(items []CartItem) int {
	return len(items)
}

// IsInCart reports whether a line with id exists
func IsInCart(items []CartItem, id string) bool {
	return FindItem(items, id) >= 0
}

// FindItem returns the index of the line with id, or -1
func FindItem(items []CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Summary is a cart snapshot together with its derived values
type Summary struct {
	State
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	ItemCount     int             `json:"itemCount"`
}

// Summarize derives the totals for s
func Summarize(s State) Summary {
	return Summary{
		State:         s,
		TotalQuantity: TotalQuantity(s.Items),
		TotalPrice:    TotalPrice(s.Items),
		ItemCount:     ItemCount(s.Items),
	}
}
