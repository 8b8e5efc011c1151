package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/client/rest"
	"github.com/shashiranjanraj/kashvi-store/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderAPIStub records the mutation requests the Orders store makes.
type orderAPIStub struct {
	orders  []models.Order
	updates []string // "PUT 3 Delivered" style
	deletes []string
}

func (s *orderAPIStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(s.orders)
		case http.MethodPut:
			var body struct {
				Status string `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			s.updates = append(s.updates, fmt.Sprintf("%s %s", r.URL.Path, body.Status))
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "Order updated"})
		case http.MethodDelete:
			s.deletes = append(s.deletes, r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "Order deleted"})
		}
	})
}

func TestOrdersRefresh(t *testing.T) {
	stub := &orderAPIStub{orders: []models.Order{
		{ID: 1, Items: "[]", Total: 100, Status: models.StatusPending},
		{ID: 2, Items: "[]", Total: 200, Status: models.StatusPending},
	}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	orders := store.NewOrders(rest.New(srv.URL, srv.Client()))
	require.NoError(t, orders.Refresh(context.Background()))
	assert.Len(t, orders.All(), 2)
}

func TestOrdersUpdateStatusPending(t *testing.T) {
	stub := &orderAPIStub{orders: []models.Order{
		{ID: 1, Items: "[]", Total: 100, Status: models.StatusPending},
	}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	orders := store.NewOrders(rest.New(srv.URL, srv.Client()))
	require.NoError(t, orders.Refresh(context.Background()))

	require.NoError(t, orders.UpdateStatus(context.Background(), 1, models.StatusPending))

	assert.Equal(t, []string{"/api/orders/1 Pending"}, stub.updates)
	assert.Empty(t, stub.deletes, "non-Delivered updates must not delete")
	require.Len(t, orders.All(), 1)
}

func TestOrdersDeliveredArchives(t *testing.T) {
	stub := &orderAPIStub{orders: []models.Order{
		{ID: 1, Items: "[]", Total: 100, Status: models.StatusPending},
		{ID: 2, Items: "[]", Total: 200, Status: models.StatusPending},
	}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	orders := store.NewOrders(rest.New(srv.URL, srv.Client()))
	require.NoError(t, orders.Refresh(context.Background()))

	require.NoError(t, orders.UpdateStatus(context.Background(), 1, models.StatusDelivered))

	assert.Equal(t, []string{"/api/orders/1 Delivered"}, stub.updates)
	assert.Equal(t, []string{"/api/orders/1"}, stub.deletes, "Delivered archives the order")

	remaining := orders.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, uint(2), remaining[0].ID)
}
