package catalog

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
)

// Query Handlers Providers
func ProvideListProductsHandler(source domain.ProductSource, publisher query.SearchPublisher) *query.ListProductsHandler {
	return query.NewListProductsHandler(source, publisher)
}

func ProvideGetProductHandler(source domain.ProductSource) *query.GetProductHandler {
	return query.NewGetProductHandler(source)
}

func ProvideListCategoriesHandler(source domain.ProductSource) *query.ListCategoriesHandler {
	return query.NewListCategoriesHandler(source)
}

func ProvideGetStatsHandler(source domain.ProductSource) *query.GetStatsHandler {
	return query.NewGetStatsHandler(source)
}

// Wire sets
var QueryHandlerSet = wire.NewSet(
	ProvideListProductsHandler,
	ProvideGetProductHandler,
	ProvideListCategoriesHandler,
	ProvideGetStatsHandler,
)
