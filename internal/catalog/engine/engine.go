// Package engine filters, sorts and paginates an in-memory product list.
//
// Every function here is pure: inputs are never mutated and identical
// inputs produce identical output.
package engine

import (
	"net/url"
	"sort"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// Apply runs the category, price and search filters, sorts the survivors and
// returns the requested page. The page is clamped into [1, totalPages].
func Apply(products []domain.Product, criteria domain.Criteria) domain.QueryResult {
	filtered := FilterByCategory(products, criteria.Category)
	filtered = FilterByPrice(filtered, criteria.MinPrice, criteria.MaxPrice)
	filtered = FilterBySearch(filtered, criteria.Search)
	filtered = Sort(filtered, criteria.Sort)

	return Paginate(filtered, criteria.Page, criteria.Limit)
}

// FilterByCategory keeps products whose category equals the URL-decoded
// criterion, ignoring case. An empty criterion keeps everything.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" {
		return products
	}

	want := strings.ToLower(decodeCategory(category))
	return keep(products, func(p domain.Product) bool {
		return strings.ToLower(p.Category) == want
	})
}

// FilterByPrice keeps products inside the inclusive bounds; nil bounds are open
func FilterByPrice(products []domain.Product, minPrice, maxPrice *int) []domain.Product {
	if minPrice == nil && maxPrice == nil {
		return products
	}

	return keep(products, func(p domain.Product) bool {
		if minPrice != nil && p.Price < float64(*minPrice) {
			return false
		}
		if maxPrice != nil && p.Price > float64(*maxPrice) {
			return false
		}
		return true
	})
}

// FilterBySearch keeps products whose title or description contains the
// trimmed search text, ignoring case
func FilterBySearch(products []domain.Product, search string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return products
	}

	return keep(products, func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	})
}

// Sort orders a copy of products by price. Equal prices keep their input
// order. SortDefault and unknown orders return the input untouched.
func Sort(products []domain.Product, order domain.SortOrder) []domain.Product {
	var less func(a, b domain.Product) bool
	switch order {
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	default:
		return products
	}

	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Paginate slices one page out of products. Total counts every product
// passed in; a non-positive limit falls back to the default page size.
func Paginate(products []domain.Product, page, limit int) domain.QueryResult {
	if limit < 1 {
		limit = domain.DefaultLimit
	}

	total := len(products)
	totalPages := max(1, (total+limit-1)/limit)
	currentPage := min(max(1, page), totalPages)

	start := min((currentPage-1)*limit, total)
	end := min(start+limit, total)

	items := make([]domain.Product, end-start)
	copy(items, products[start:end])

	return domain.QueryResult{
		Items:       items,
		Total:       total,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

// decodeCategory undoes URL encoding the way path segments are encoded.
// A malformed escape leaves the criterion as given.
func decodeCategory(category string) string {
	decoded, err := url.PathUnescape(category)
	if err != nil {
		return category
	}
	return decoded
}

func keep(products []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
