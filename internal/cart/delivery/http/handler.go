package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	"github.com/tair/storefront/internal/session"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

var cartOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations by operation",
	},
	[]string{"operation"},
)

func init() {
	prometheus.MustRegister(cartOperations)
}

// CartHandler serves the session cart
type CartHandler struct {
	// Command handlers
	addItemHandler        *command.AddItemHandler
	removeItemHandler     *command.RemoveItemHandler
	updateQuantityHandler *command.UpdateQuantityHandler
	clearCartHandler      *command.ClearCartHandler
	toggleDrawerHandler   *command.ToggleDrawerHandler

	// Query handlers
	getCartHandler  *query.GetCartHandler
	isInCartHandler *query.IsInCartHandler

	sessions *session.Manager
	metrics  *httpx.Metrics
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	addItemHandler *command.AddItemHandler,
	removeItemHandler *command.RemoveItemHandler,
	updateQuantityHandler *command.UpdateQuantityHandler,
	clearCartHandler *command.ClearCartHandler,
	toggleDrawerHandler *command.ToggleDrawerHandler,
	getCartHandler *query.GetCartHandler,
	isInCartHandler *query.IsInCartHandler,
	sessions *session.Manager,
) *CartHandler {
	return &CartHandler{
		addItemHandler:        addItemHandler,
		removeItemHandler:     removeItemHandler,
		updateQuantityHandler: updateQuantityHandler,
		clearCartHandler:      clearCartHandler,
		toggleDrawerHandler:   toggleDrawerHandler,
		getCartHandler:        getCartHandler,
		isInCartHandler:       isInCartHandler,
		sessions:              sessions,
		metrics:               httpx.NewMetrics("cart_service"),
	}
}

// UpdateQuantityRequest is the body of PATCH /api/cart/items/{id}
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics

	sr := router.PathPrefix("/api/cart").Subrouter()
	sr.Use(h.sessions.Require)
	sr.HandleFunc("", m.Wrap("/api/cart", h.GetCart)).Methods("GET")
	sr.HandleFunc("", m.Wrap("/api/cart", h.ClearCart)).Methods("DELETE")
	sr.HandleFunc("/items", m.Wrap("/api/cart/items", h.AddItem)).Methods("POST")
	sr.HandleFunc("/items/{id}", m.Wrap("/api/cart/items/{id}", h.IsInCart)).Methods("GET")
	sr.HandleFunc("/items/{id}", m.Wrap("/api/cart/items/{id}", h.UpdateQuantity)).Methods("PATCH")
	sr.HandleFunc("/items/{id}", m.Wrap("/api/cart/items/{id}", h.RemoveItem)).Methods("DELETE")
	sr.HandleFunc("/drawer/open", m.Wrap("/api/cart/drawer/open", h.OpenDrawer)).Methods("POST")
	sr.HandleFunc("/drawer/close", m.Wrap("/api/cart/drawer/close", h.CloseDrawer)).Methods("POST")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{SessionID: sessionID(r)})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, summary)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.AddItemPayload
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.addItemHandler.Handle(r.Context(), command.AddItemCommand{
		SessionID: sessionID(r),
		Item:      item,
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	cartOperations.WithLabelValues("add").Inc()
	logger.Debug(r.Context()).
		Str("item_id", item.ID).
		Int("total_quantity", summary.TotalQuantity).
		Msg("Item added to cart")

	httpx.RespondJSON(w, http.StatusCreated, httpx.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    summary,
	})
}

// UpdateQuantity handles PATCH /api/cart/items/{id}. Quantities below 1 are clamped to 1.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.updateQuantityHandler.Handle(r.Context(), command.UpdateQuantityCommand{
		SessionID: sessionID(r),
		ItemID:    mux.Vars(r)["id"],
		Quantity:  *req.Quantity,
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	cartOperations.WithLabelValues("update_quantity").Inc()
	httpx.RespondData(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	summary, err := h.removeItemHandler.Handle(r.Context(), command.RemoveItemCommand{
		SessionID: sessionID(r),
		ItemID:    mux.Vars(r)["id"],
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	cartOperations.WithLabelValues("remove").Inc()
	httpx.RespondData(w, http.StatusOK, summary)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.clearCartHandler.Handle(r.Context(), command.ClearCartCommand{SessionID: sessionID(r)})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	cartOperations.WithLabelValues("clear").Inc()
	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    summary,
	})
}

// IsInCart handles GET /api/cart/items/{id}
func (h *CartHandler) IsInCart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	inCart, err := h.isInCartHandler.Handle(r.Context(), query.IsInCartQuery{
		SessionID: sessionID(r),
		ItemID:    id,
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"isInCart": inCart,
	})
}

// OpenDrawer handles POST /api/cart/drawer/open
func (h *CartHandler) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	h.toggleDrawer(w, r, true)
}

// CloseDrawer handles POST /api/cart/drawer/close
func (h *CartHandler) CloseDrawer(w http.ResponseWriter, r *http.Request) {
	h.toggleDrawer(w, r, false)
}

func (h *CartHandler) toggleDrawer(w http.ResponseWriter, r *http.Request, open bool) {
	summary, err := h.toggleDrawerHandler.Handle(r.Context(), command.ToggleDrawerCommand{
		SessionID: sessionID(r),
		Open:      open,
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, summary)
}

func sessionID(r *http.Request) string {
	if s, ok := session.FromContext(r.Context()); ok {
		return s.ID
	}
	return ""
}

func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, domain.ErrNegativePrice):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Session not found")
	default:
		logger.Error(r.Context()).Err(err).Msg("Cart operation failed")
		httpx.RespondError(w, http.StatusInternalServerError, "Cart operation failed")
	}
}
