package domain

import (
	"bytes"
	"encoding/json"
)

// SortOrder selects the ordering applied to filtered products
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Valid reports whether s is one of the known sort orders
func (s SortOrder) Valid() bool {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Criteria is the current set of filter, sort and pagination parameters.
// Page and Limit are always >= 1 once produced by the codec or the store.
type Criteria struct {
	Search   string    `json:"search"`
	Category string    `json:"category"`
	MinPrice *int      `json:"minPrice"`
	MaxPrice *int      `json:"maxPrice"`
	Sort     SortOrder `json:"sort"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// DefaultCriteria returns criteria with every field at its default
func DefaultCriteria() Criteria {
	return Criteria{
		Sort:  SortDefault,
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Clone returns a deep copy; the price bounds are not shared
func (c Criteria) Clone() Criteria {
	out := c
	out.MinPrice = clonePrice(c.MinPrice)
	out.MaxPrice = clonePrice(c.MaxPrice)
	return out
}

// Equal compares criteria field by field, price bounds by value
func (c Criteria) Equal(o Criteria) bool {
	return c.Search == o.Search &&
		c.Category == o.Category &&
		equalPrice(c.MinPrice, o.MinPrice) &&
		equalPrice(c.MaxPrice, o.MaxPrice) &&
		c.Sort == o.Sort &&
		c.Page == o.Page &&
		c.Limit == o.Limit
}

// Price is a convenience for building price bounds
func Price(v int) *int {
	return &v
}

func clonePrice(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalPrice(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Optional marks a patch field as touched. The zero value means "leave as is".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a touched Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field as set whenever the key is present, null included
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Patch is a partial update of Criteria
type Patch struct {
	Search   Optional[string]    `json:"search"`
	Category Optional[string]    `json:"category"`
	MinPrice Optional[*int]      `json:"minPrice"`
	MaxPrice Optional[*int]      `json:"maxPrice"`
	Sort     Optional[SortOrder] `json:"sort"`
	Page     Optional[int]       `json:"page"`
	Limit    Optional[int]       `json:"limit"`
}

// IsEmpty reports whether no field is touched
func (p Patch) IsEmpty() bool {
	return !p.Search.Set && !p.Category.Set && !p.MinPrice.Set && !p.MaxPrice.Set &&
		!p.Sort.Set && !p.Page.Set && !p.Limit.Set
}

// TouchesResultSet reports whether the patch changes anything besides page or limit
func (p Patch) TouchesResultSet() bool {
	return p.Search.Set || p.Category.Set || p.MinPrice.Set || p.MaxPrice.Set || p.Sort.Set
}

// Merge combines two patches; fields set in next win
func (p Patch) Merge(next Patch) Patch {
	out := p
	if next.Search.Set {
		out.Search = next.Search
	}
	if next.Category.Set {
		out.Category = next.Category
	}
	if next.MinPrice.Set {
		out.MinPrice = next.MinPrice
	}
	if next.MaxPrice.Set {
		out.MaxPrice = next.MaxPrice
	}
	if next.Sort.Set {
		out.Sort = next.Sort
	}
	if next.Page.Set {
		out.Page = next.Page
	}
	if next.Limit.Set {
		out.Limit = next.Limit
	}
	return out
}

// Without clears every field of p that other sets
func (p Patch) Without(other Patch) Patch {
	out := p
	if other.Search.Set {
		out.Search = Optional[string]{}
	}
	if other.Category.Set {
		out.Category = Optional[string]{}
	}
	if other.MinPrice.Set {
		out.MinPrice = Optional[*int]{}
	}
	if other.MaxPrice.Set {
		out.MaxPrice = Optional[*int]{}
	}
	if other.Sort.Set {
		out.Sort = Optional[SortOrder]{}
	}
	if other.Page.Set {
		out.Page = Optional[int]{}
	}
	if other.Limit.Set {
		out.Limit = Optional[int]{}
	}
	return out
}
