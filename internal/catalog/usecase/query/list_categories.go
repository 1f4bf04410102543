package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

var whitespace = regexp.MustCompile(`\s+`)

// ListCategoriesQuery represents the query to list catalog categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	source domain.ProductSource
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(source domain.ProductSource) *ListCategoriesHandler {
	return &ListCategoriesHandler{source: source}
}

// Handle executes the list categories query. Ids follow listing order.
func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]domain.Category, error) {
	names, err := h.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(names))
	for i, name := range names {
		categories = append(categories, domain.Category{
			ID:   fmt.Sprintf("category-%d", i+1),
			Name: TitleCase(name),
			Slug: Slug(name),
		})
	}
	return categories, nil
}

// Resolve maps a category slug back to the category name the catalog uses.
// Unknown slugs are returned unchanged so they can still match a raw name.
func (h *ListCategoriesHandler) Resolve(ctx context.Context, slug string) (string, error) {
	names, err := h.source.Categories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category: %w", err)
	}

	for _, name := range names {
		if Slug(name) == strings.ToLower(slug) {
			return name, nil
		}
	}
	return slug, nil
}

// TitleCase upper-cases the first letter of every space separated word
func TitleCase(name string) string {
	words := strings.Split(name, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// Slug lower-cases name and joins whitespace runs with a dash
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}
