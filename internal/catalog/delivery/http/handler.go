package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/filter"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/session"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// CatalogHandler serves the catalog and the per-session filter state
type CatalogHandler struct {
	// Query handlers
	listHandler       *query.ListProductsHandler
	getProductHandler *query.GetProductHandler
	categoriesHandler *query.ListCategoriesHandler
	statsHandler      *query.GetStatsHandler

	sessions *session.Manager
	metrics  *httpx.Metrics
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	listHandler *query.ListProductsHandler,
	getProductHandler *query.GetProductHandler,
	categoriesHandler *query.ListCategoriesHandler,
	statsHandler *query.GetStatsHandler,
	sessions *session.Manager,
) *CatalogHandler {
	return &CatalogHandler{
		listHandler:       listHandler,
		getProductHandler: getProductHandler,
		categoriesHandler: categoriesHandler,
		statsHandler:      statsHandler,
		sessions:          sessions,
		metrics:           httpx.NewMetrics("catalog_service"),
	}
}

// FilterState is the filter view of a session
type FilterState struct {
	Criteria      domain.Criteria `json:"criteria"`
	Location      string          `json:"location"`
	ActiveFilters int             `json:"activeFilters"`
	PendingInput  bool            `json:"pendingInput"`
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics

	router.HandleFunc("/api/products", m.Wrap("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/stats", m.Wrap("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/category/{slug}", m.Wrap("/api/products/category/{slug}", h.ListProductsByCategory)).Methods("GET")
	router.HandleFunc("/api/products/{id}", m.Wrap("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/categories", m.Wrap("/api/categories", h.ListCategories)).Methods("GET")

	// GET /api/session is the only route that starts a session
	router.Handle("/api/session", h.sessions.Middleware(m.Wrap("/api/session", h.GetSession))).Methods("GET")

	sr := router.PathPrefix("/api/session").Subrouter()
	sr.Use(h.sessions.Require)
	sr.HandleFunc("", m.Wrap("/api/session", h.EndSession)).Methods("DELETE")
	sr.HandleFunc("/filters", m.Wrap("/api/session/filters", h.GetFilters)).Methods("GET")
	sr.HandleFunc("/filters", m.Wrap("/api/session/filters", h.UpdateFilters)).Methods("PATCH")
	sr.HandleFunc("/filters", m.Wrap("/api/session/filters", h.ResetFilters)).Methods("DELETE")
	sr.HandleFunc("/filters/input", m.Wrap("/api/session/filters/input", h.SubmitFilterInput)).Methods("POST")
	sr.HandleFunc("/filters/flush", m.Wrap("/api/session/filters/flush", h.FlushFilterInput)).Methods("POST")
	sr.HandleFunc("/products", m.Wrap("/api/session/products", h.ListSessionProducts)).Methods("GET")
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, filter.Decode(r.URL.Query()), "/products")
}

// ListProductsByCategory handles GET /api/products/category/{slug}
func (h *CatalogHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, err := h.categoriesHandler.Resolve(r.Context(), slug)
	if err != nil {
		logger.Warn(r.Context()).Err(err).Str("slug", slug).Msg("Category lookup failed, filtering by slug")
		category = slug
	}

	criteria := filter.Decode(r.URL.Query())
	criteria.Category = category
	h.list(w, r, criteria, "/products")
}

// ListSessionProducts handles GET /api/session/products
func (h *CatalogHandler) ListSessionProducts(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	h.list(w, r, s.Filters.Current(), s.Filters.Path())
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, criteria domain.Criteria, path string) {
	listing, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Criteria: criteria,
		Path:     path,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondFailure(w, err, "Failed to list products")
		return
	}

	httpx.RespondData(w, http.StatusOK, listing)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error(r.Context()).Err(err).Msg("Failed to get product")
		}
		respondFailure(w, err, "Failed to get product")
		return
	}

	httpx.RespondData(w, http.StatusOK, product)
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondFailure(w, err, "Failed to list categories")
		return
	}

	httpx.RespondData(w, http.StatusOK, categories)
}

// GetStats handles GET /api/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get stats")
		respondFailure(w, err, "Failed to get statistics")
		return
	}

	httpx.RespondData(w, http.StatusOK, stats)
}

// GetSession handles GET /api/session
func (h *CatalogHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	httpx.RespondData(w, http.StatusOK, map[string]interface{}{
		"id":        s.ID,
		"createdAt": s.CreatedAt,
		"filters":   filterState(s),
	})
}

// EndSession handles DELETE /api/session
func (h *CatalogHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	h.sessions.Delete(r.Context(), s.ID)
	w.Header().Del(session.HeaderName)

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Session ended",
	})
}

// GetFilters handles GET /api/session/filters
func (h *CatalogHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	httpx.RespondData(w, http.StatusOK, filterState(s))
}

// UpdateFilters handles PATCH /api/session/filters
func (h *CatalogHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePatch(w, r)
	if !ok {
		return
	}

	s, _ := session.FromContext(r.Context())
	s.Input.Apply(p)

	httpx.RespondData(w, http.StatusOK, filterState(s))
}

// SubmitFilterInput handles POST /api/session/filters/input. The patch is
// applied once input has been quiet for the debounce window.
func (h *CatalogHandler) SubmitFilterInput(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePatch(w, r)
	if !ok {
		return
	}

	s, _ := session.FromContext(r.Context())
	s.Input.Submit(p)

	httpx.RespondJSON(w, http.StatusAccepted, httpx.Response{
		Success: true,
		Message: "Input queued",
		Data:    filterState(s),
	})
}

// FlushFilterInput handles POST /api/session/filters/flush
func (h *CatalogHandler) FlushFilterInput(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	s.Input.Flush()

	httpx.RespondData(w, http.StatusOK, filterState(s))
}

// ResetFilters handles DELETE /api/session/filters
func (h *CatalogHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	s.Input.Stop()
	s.Filters.Reset()

	httpx.RespondData(w, http.StatusOK, filterState(s))
}

// RegisterHealthCheck registers /health. db may be nil when the catalog is remote.
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB, breaker *repository.CircuitBreaker) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				httpx.RespondError(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}

		data := map[string]interface{}{
			"sessions": h.sessions.Len(),
		}
		if breaker != nil {
			data["catalog_circuit"] = breaker.State()
		}

		httpx.RespondJSON(w, http.StatusOK, httpx.Response{
			Success: true,
			Message: "Storefront service is healthy",
			Data:    data,
		})
	}).Methods("GET")
}

func filterState(s *session.Session) FilterState {
	criteria := s.Filters.Current()
	return FilterState{
		Criteria:      criteria,
		Location:      s.Filters.Location(),
		ActiveFilters: filter.ActiveFilterCount(criteria),
		PendingInput:  s.Input.Pending(),
	}
}

func decodePatch(w http.ResponseWriter, r *http.Request) (domain.Patch, bool) {
	var p domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return p, false
	}
	return p, true
}

// respondFailure maps use case errors onto HTTP statuses
func respondFailure(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, query.ErrInvalidProductID):
		httpx.RespondError(w, http.StatusBadRequest, "Invalid product ID")
	case errors.Is(err, domain.ErrProductNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, session.ErrSessionNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, repository.ErrCircuitOpen):
		httpx.RespondError(w, http.StatusServiceUnavailable, "Catalog temporarily unavailable")
	default:
		httpx.RespondError(w, http.StatusBadGateway, fallback)
	}
}
