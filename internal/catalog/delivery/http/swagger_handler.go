package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description Filter, sort and paginate the catalog
// @Tags Products
// @Produce json
// @Param category query string false "Category name"
// @Param minPrice query int false "Inclusive lower price bound"
// @Param maxPrice query int false "Inclusive upper price bound"
// @Param search query string false "Case-insensitive title search"
// @Param sort query string false "default, price_asc or price_desc"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 12)"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int,currentPage=int,totalPages=int,location=string,activeFilters=int}}
// @Failure 502 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// ListProductsByCategory godoc
// @Summary List products in a category
// @Description The slug is resolved to a category name before filtering
// @Tags Products
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page"
// @Param sort query string false "Sort order"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products/category/{slug} [get]
func (h *CatalogHandler) ListProductsByCategoryDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// GetStats godoc
// @Summary Catalog statistics
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total_products=int,total_categories=int,average_price=number}}
// @Router /api/products/stats [get]
func (h *CatalogHandler) GetStatsDoc() {}

// ListCategories godoc
// @Summary List categories
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategoriesDoc() {}

// GetSession godoc
// @Summary Start or resume a browsing session
// @Description Starts a session seeded from the query when X-Session-Id is missing or unknown. Every other session and cart route answers 404 without a live session.
// @Tags Session
// @Produce json
// @Param X-Session-Id header string false "Session ID"
// @Param search query string false "Initial search"
// @Param category query string false "Initial category"
// @Success 200 {object} object{success=bool,data=object{id=string,createdAt=string,filters=object}}
// @Router /api/session [get]
func (h *CatalogHandler) GetSessionDoc() {}

// GetFilters godoc
// @Summary Current session filters
// @Tags Session
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object{criteria=object,location=string,activeFilters=int,pendingInput=bool}}
// @Router /api/session/filters [get]
func (h *CatalogHandler) GetFiltersDoc() {}

// UpdateFilters godoc
// @Summary Merge a patch into the session filters
// @Description Changing category, price, search or sort resets the page to 1
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param request body object{category=string,minPrice=int,maxPrice=int,search=string,sort=string,page=int,limit=int} true "Partial criteria"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/session/filters [patch]
func (h *CatalogHandler) UpdateFiltersDoc() {}

// SubmitFilterInput godoc
// @Summary Queue as-you-type filter input
// @Description The latest patch is applied once input has been quiet for the debounce window
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Param request body object{search=string,minPrice=int,maxPrice=int} true "Partial criteria"
// @Success 202 {object} object{success=bool,message=string,data=object}
// @Router /api/session/filters/input [post]
func (h *CatalogHandler) SubmitFilterInputDoc() {}

// ResetFilters godoc
// @Summary Reset session filters to defaults
// @Tags Session
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/session/filters [delete]
func (h *CatalogHandler) ResetFiltersDoc() {}

// ListSessionProducts godoc
// @Summary List products with the session filters
// @Tags Session
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Failure 404 {object} object{success=bool,error=string}
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/session/products [get]
func (h *CatalogHandler) ListSessionProductsDoc() {}
