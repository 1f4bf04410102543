//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/cart/delivery/http"
	"github.com/tair/storefront/internal/session"
)

// InitializeHTTPHandler initializes the cart HTTP handler with all dependencies
func InitializeHTTPHandler(sessions *session.Manager) (*http.CartHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCartHandler,
	)
	return nil, nil
}
