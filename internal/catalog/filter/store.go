package filter

import (
	"sync"

	"github.com/tair/storefront/internal/catalog/domain"
)

// Navigator receives the canonical location after every store change
type Navigator interface {
	Navigate(location string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(location string)

// Navigate calls f(location)
func (f NavigatorFunc) Navigate(location string) {
	f(location)
}

// Store owns the current criteria of one browsing context. The URL is a
// view of the store: every Update and Reset republishes the canonical
// location through the navigator, which is the only side effect.
type Store struct {
	mu        sync.Mutex
	path      string
	criteria  domain.Criteria
	location  string
	navigator Navigator
}

// NewStore creates a store for the page at path. A nil navigator discards
// locations.
func NewStore(path string, initial domain.Criteria, navigator Navigator) *Store {
	if navigator == nil {
		navigator = NavigatorFunc(func(string) {})
	}
	criteria := Normalize(initial)
	return &Store{
		path:      path,
		criteria:  criteria,
		location:  Location(path, criteria),
		navigator: navigator,
	}
}

// NewStoreFromQuery seeds a store from the query string the page was opened with
func NewStoreFromQuery(path, rawQuery string, navigator Navigator) *Store {
	return NewStore(path, DecodeQuery(rawQuery), navigator)
}

// Current returns a snapshot of the criteria
func (s *Store) Current() domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}

// Path is the page the store builds locations for
func (s *Store) Path() string {
	return s.path
}

// Location returns the canonical location of the current criteria
func (s *Store) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Update applies a partial change. Touching anything other than page or
// limit sends the user back to page 1.
//
// The navigator runs under the store lock so locations are published in
// update order; it must not call back into the store.
func (s *Store) Update(p domain.Patch) domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.criteria.Clone()
	if p.Search.Set {
		next.Search = p.Search.Value
	}
	if p.Category.Set {
		next.Category = p.Category.Value
	}
	if p.MinPrice.Set {
		next.MinPrice = p.MinPrice.Value
	}
	if p.MaxPrice.Set {
		next.MaxPrice = p.MaxPrice.Value
	}
	if p.Sort.Set {
		next.Sort = p.Sort.Value
	}
	if p.Page.Set {
		next.Page = p.Page.Value
	}
	if p.Limit.Set {
		next.Limit = p.Limit.Value
	}
	if p.TouchesResultSet() {
		next.Page = domain.DefaultPage
	}

	s.publish(Normalize(next))
	return s.criteria.Clone()
}

// Reset restores every field to its default
func (s *Store) Reset() domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publish(domain.DefaultCriteria())
	return s.criteria.Clone()
}

func (s *Store) publish(c domain.Criteria) {
	s.criteria = c
	s.location = Location(s.path, c)
	s.navigator.Navigate(s.location)
}
