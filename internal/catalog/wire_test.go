package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/session"
)

type staticSource []domain.Product

func (s staticSource) FindAll(context.Context) ([]domain.Product, error) {
	return s, nil
}

func (s staticSource) FindByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	for i := range s {
		if s[i].ID == id {
			return &s[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s staticSource) Categories(context.Context) ([]string, error) {
	return []string{"books"}, nil
}

type countingPublisher struct {
	calls int
}

func (p *countingPublisher) PublishCatalogSearched(context.Context, domain.Criteria, int) error {
	p.calls++
	return nil
}

func TestInitializeHTTPHandler(t *testing.T) {
	source := staticSource{{ID: "1", Title: "Go in Action", Price: 30, Category: "books"}}
	publisher := &countingPublisher{}

	handler, err := InitializeHTTPHandler(source, publisher, session.NewManager(session.Config{}))
	require.NoError(t, err)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?search=go", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Equal(t, 1, publisher.calls)
}
