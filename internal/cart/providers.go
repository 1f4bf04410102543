package cart

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	"github.com/tair/storefront/internal/session"
)

// ProvideCartProvider resolves carts through the session manager
func ProvideCartProvider(sessions *session.Manager) store.Provider {
	return sessions
}

// Command Handlers Providers
func ProvideAddItemHandler(carts store.Provider) *command.AddItemHandler {
	return command.NewAddItemHandler(carts)
}

func ProvideRemoveItemHandler(carts store.Provider) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(carts)
}

func ProvideUpdateQuantityHandler(carts store.Provider) *command.UpdateQuantityHandler {
	return command.NewUpdateQuantityHandler(carts)
}

func ProvideClearCartHandler(carts store.Provider) *command.ClearCartHandler {
	return command.NewClearCartHandler(carts)
}

func ProvideToggleDrawerHandler(carts store.Provider) *command.ToggleDrawerHandler {
	return command.NewToggleDrawerHandler(carts)
}

// Query Handlers Providers
func ProvideGetCartHandler(carts store.Provider) *query.GetCartHandler {
	return query.NewGetCartHandler(carts)
}

func ProvideIsInCartHandler(carts store.Provider) *query.IsInCartHandler {
	return query.NewIsInCartHandler(carts)
}

// Wire sets
var ProviderSet = wire.NewSet(
	ProvideCartProvider,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
	ProvideUpdateQuantityHandler,
	ProvideClearCartHandler,
	ProvideToggleDrawerHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCartHandler,
	ProvideIsInCartHandler,
)

var AllHandlersSet = wire.NewSet(
	ProviderSet,
	CommandHandlerSet,
	QueryHandlerSet,
)
