package domain

// QueryResult is one page of the filtered, sorted catalog. It is derived on
// every query and never stored.
type QueryResult struct {
	Items       []Product `json:"items"`
	Total       int       `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

// Category is a catalog category as shown in navigation
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PriceRange is the lowest and highest price in a product set
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CatalogStats summarizes the catalog
type CatalogStats struct {
	TotalProducts   int        `json:"total_products"`
	TotalCategories int        `json:"total_categories"`
	AveragePrice    float64    `json:"average_price"`
	PriceRange      PriceRange `json:"price_range"`
}
