package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/client/rest"
	"github.com/shashiranjanraj/kashvi-store/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsRefreshAddDelete(t *testing.T) {
	catalogue := []models.Product{
		{ID: 1, Name: "Gold Ring", Price: 2499},
	}
	nextID := uint(2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(catalogue)
		case r.Method == http.MethodPost:
			var in rest.ProductInput
			json.NewDecoder(r.Body).Decode(&in)
			created := models.Product{ID: nextID, Name: in.Name, Price: in.Price, Image: in.ImageURL}
			nextID++
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodDelete:
			if strings.HasSuffix(r.URL.Path, "/999") {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]interface{}{"message": "Product not found", "id": 999})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "Product deleted"})
		}
	}))
	defer srv.Close()

	products := store.NewProducts(rest.New(srv.URL, srv.Client()))

	require.NoError(t, products.Refresh(context.Background()))
	require.Len(t, products.All(), 1)

	created, err := products.Add(context.Background(), rest.ProductInput{Name: "Pearl Earrings", Price: 1299})
	require.NoError(t, err)
	assert.Equal(t, uint(2), created.ID)
	assert.Len(t, products.All(), 2, "created product is appended locally")

	require.NoError(t, products.Delete(context.Background(), 1))
	all := products.All()
	require.Len(t, all, 1)
	assert.Equal(t, uint(2), all[0].ID)

	err = products.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, rest.ErrNotFound)
	assert.Len(t, products.All(), 1, "failed delete leaves the list untouched")
}
