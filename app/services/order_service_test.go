package services_test

import (
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrders(t *testing.T) *services.OrderService {
	t.Helper()
	return services.NewOrderService(repositories.NewOrderRepository(newTestDB(t)))
}

func TestOrderPlaceStartsPending(t *testing.T) {
	svc := newOrders(t)

	items, err := models.EncodeItems([]models.LineItem{
		{ProductID: 1, Name: "Gold Ring", Price: 2499, Quantity: 2},
	})
	require.NoError(t, err)

	order, err := svc.Place(items, 4998)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, items, order.Items)
	assert.Equal(t, 4998.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)

	parsed, err := order.ParseItems()
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, 2, parsed[0].Quantity)
}

func TestOrderListInsertionOrder(t *testing.T) {
	svc := newOrders(t)

	first, err := svc.Place(`[]`, 100)
	require.NoError(t, err)
	second, err := svc.Place(`[]`, 200)
	require.NoError(t, err)

	orders, err := svc.List()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestOrderUpdateStatus(t *testing.T) {
	svc := newOrders(t)

	order, err := svc.Place(`[]`, 100)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(order.ID, models.StatusDelivered))

	orders, err := svc.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusDelivered, orders[0].Status)
}

func TestOrderUpdateStatusSameValue(t *testing.T) {
	svc := newOrders(t)

	order, err := svc.Place(`[]`, 100)
	require.NoError(t, err)

	// No-op transition must still succeed, not 404.
	assert.NoError(t, svc.UpdateStatus(order.ID, models.StatusPending))
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	svc := newOrders(t)

	err := svc.UpdateStatus(42, models.StatusDelivered)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderDelete(t *testing.T) {
	svc := newOrders(t)

	order, err := svc.Place(`[]`, 100)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	orders, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderDeleteMissing(t *testing.T) {
	svc := newOrders(t)

	err := svc.Delete(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
