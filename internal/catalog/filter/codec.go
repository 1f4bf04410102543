// Package filter keeps catalog criteria in sync with their query-string form.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/tair/storefront/internal/catalog/domain"
)

// Query-string parameter names
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamLimit    = "limit"
)

// Decode builds criteria from query parameters. Malformed or missing values
// fall back to their defaults; Decode never fails.
func Decode(values url.Values) domain.Criteria {
	c := domain.DefaultCriteria()

	c.Search = values.Get(ParamSearch)
	c.Category = values.Get(ParamCategory)
	c.MinPrice = decodePrice(values.Get(ParamMinPrice))
	c.MaxPrice = decodePrice(values.Get(ParamMaxPrice))

	if sort := domain.SortOrder(values.Get(ParamSort)); sort.Valid() {
		c.Sort = sort
	}

	c.Page = decodePositive(values.Get(ParamPage), domain.DefaultPage)
	c.Limit = decodePositive(values.Get(ParamLimit), domain.DefaultLimit)

	return c
}

// DecodeQuery decodes a raw query string. Undecodable pairs are skipped.
func DecodeQuery(rawQuery string) domain.Criteria {
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return Decode(values)
}

// Encode renders criteria as query parameters, leaving out every field that
// holds its default so that equal criteria always produce the same query.
func Encode(c domain.Criteria) url.Values {
	values := url.Values{}

	if c.Search != "" {
		values.Set(ParamSearch, c.Search)
	}
	if c.Category != "" {
		values.Set(ParamCategory, c.Category)
	}
	if c.MinPrice != nil {
		values.Set(ParamMinPrice, strconv.Itoa(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		values.Set(ParamMaxPrice, strconv.Itoa(*c.MaxPrice))
	}
	if c.Sort != "" && c.Sort != domain.SortDefault {
		values.Set(ParamSort, string(c.Sort))
	}
	if c.Page > domain.DefaultPage {
		values.Set(ParamPage, strconv.Itoa(c.Page))
	}
	if c.Limit > 0 && c.Limit != domain.DefaultLimit {
		values.Set(ParamLimit, strconv.Itoa(c.Limit))
	}

	return values
}

// Location joins path and the canonical query of c
func Location(path string, c domain.Criteria) string {
	query := Encode(c).Encode()
	if query == "" {
		return path
	}
	return path + "?" + query
}

// ActiveFilterCount counts the filters that differ from their default.
// Pagination is not a filter.
func ActiveFilterCount(c domain.Criteria) int {
	count := 0
	if c.Search != "" {
		count++
	}
	if c.Category != "" {
		count++
	}
	if c.MinPrice != nil {
		count++
	}
	if c.MaxPrice != nil {
		count++
	}
	if c.Sort != "" && c.Sort != domain.SortDefault {
		count++
	}
	return count
}

// Normalize coerces page, limit and sort into their valid ranges and drops
// negative price bounds
func Normalize(c domain.Criteria) domain.Criteria {
	c = c.Clone()
	if c.Page < 1 {
		c.Page = domain.DefaultPage
	}
	if c.Limit < 1 {
		c.Limit = domain.DefaultLimit
	}
	if !c.Sort.Valid() {
		c.Sort = domain.SortDefault
	}
	if c.MinPrice != nil && *c.MinPrice < 0 {
		c.MinPrice = nil
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		c.MaxPrice = nil
	}
	return c
}

func decodePrice(raw string) *int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

func decodePositive(raw string, fallback int) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 1 {
		return fallback
	}
	return n
}

// parseLeadingInt reads an optionally signed decimal integer prefix after
// leading whitespace, so "25abc" is 25 and "12.9" is 12
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
