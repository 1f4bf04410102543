package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/session"
)

func TestInitializeHTTPHandler(t *testing.T) {
	sessions := session.NewManager(session.Config{})

	handler, err := InitializeHTTPHandler(sessions)
	require.NoError(t, err)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	s := sessions.Create(context.Background(), "")

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"id":"1","title":"Mug","price":"4.5"}`))
	req.Header.Set(session.HeaderName, s.ID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	cart, err := sessions.Cart(req.Context(), s.ID)
	require.NoError(t, err)
	assert.Len(t, cart.State().Items, 1)
}
