// Package store holds the in-memory shopping cart.
package store

import (
	"context"
	"sync"

	"github.com/tair/storefront/internal/cart/domain"
)

// Store owns one cart. All mutations are serialized; readers get snapshots.
type Store struct {
	mu    sync.Mutex
	state domain.State
}

// New creates an empty cart with the drawer closed
func New() *Store {
	return &Store{state: domain.State{Items: []domain.CartItem{}}}
}

// State returns a snapshot of the cart
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddItem increments the line for p.ID or appends a new line with quantity 1
func (s *Store) AddItem(p domain.AddItemPayload) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.FindItem(s.state.Items, p.ID); i >= 0 {
		s.state.Items[i].Quantity++
	} else {
		s.state.Items = append(s.state.Items, domain.CartItem{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Quantity: 1,
			Image:    p.Image,
		})
	}
	return s.state.Clone()
}

// RemoveItem drops the line with id; unknown ids are ignored
func (s *Store) RemoveItem(id string) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.FindItem(s.state.Items, id); i >= 0 {
		items := make([]domain.CartItem, 0, len(s.state.Items)-1)
		items = append(items, s.state.Items[:i]...)
		s.state.Items = append(items, s.state.Items[i+1:]...)
	}
	return s.state.Clone()
}

// UpdateQuantity sets the quantity of the line with id, raising anything below
// 1 to 1. It never removes a line; unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, quantity int) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.FindItem(s.state.Items, id); i >= 0 {
		s.state.Items[i].Quantity = max(1, quantity)
	}
	return s.state.Clone()
}

// ClearCart empties the cart and leaves the drawer as it is
func (s *Store) ClearCart() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = []domain.CartItem{}
	return s.state.Clone()
}

func (s *Store) OpenDrawer() domain.State {
	return s.setDrawer(true)
}

func (s *Store) CloseDrawer() domain.State {
	return s.setDrawer(false)
}

func (s *Store) setDrawer(open bool) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsDrawerOpen = open
	return s.state.Clone()
}

// Provider resolves the cart that belongs to a browsing session
type Provider interface {
	Cart(ctx context.Context, sessionID string) (*Store, error)
}
