//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/session"
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(source domain.ProductSource, publisher query.SearchPublisher, sessions *session.Manager) (*http.CatalogHandler, error) {
	wire.Build(
		QueryHandlerSet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
