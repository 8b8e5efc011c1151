package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/client/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, status int, body interface{}) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientNotFound(t *testing.T) {
	srv := stub(t, http.StatusNotFound, map[string]interface{}{"message": "Product not found", "id": 42})

	c := rest.New(srv.URL, srv.Client())
	err := c.DeleteProduct(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, rest.ErrNotFound)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestClientValidationError(t *testing.T) {
	srv := stub(t, http.StatusBadRequest, map[string]interface{}{
		"message": "The name field is required.",
		"errors":  map[string]string{"name": "The name field is required."},
	})

	c := rest.New(srv.URL, srv.Client())
	_, err := c.CreateProduct(context.Background(), rest.ProductInput{Price: 100})

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "The name field is required.", apiErr.Message)
	assert.Contains(t, apiErr.Errors, "name")
}

func TestClientServerError(t *testing.T) {
	srv := stub(t, http.StatusInternalServerError, map[string]string{"error": "db locked"})

	c := rest.New(srv.URL, srv.Client())
	_, err := c.Orders(context.Background())

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "db locked", apiErr.Message)
	assert.False(t, errors.Is(err, rest.ErrNotFound))
}

func TestClientEmptyErrorBody(t *testing.T) {
	srv := stub(t, http.StatusBadGateway, nil)

	c := rest.New(srv.URL, srv.Client())
	_, err := c.Products(context.Background())

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
