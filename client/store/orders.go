package store

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/client/rest"
)

// Orders mirrors the server-side order list for the admin view.
type Orders struct {
	mu     sync.RWMutex
	orders []models.Order
	api    *rest.Client
}

func NewOrders(api *rest.Client) *Orders {
	return &Orders{api: api}
}

// Refresh replaces the local order list with the server's.
func (o *Orders) Refresh(ctx context.Context) error {
	orders, err := o.api.Orders(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.orders = orders
	o.mu.Unlock()
	return nil
}

// UpdateStatus moves an order to status on the server and locally. Marking
// an order Delivered archives it: the row is deleted after the status update
// and disappears from the list.
func (o *Orders) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := o.api.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}

	if status == models.StatusDelivered {
		if err := o.api.DeleteOrder(ctx, id); err != nil {
			return err
		}

		o.mu.Lock()
		kept := o.orders[:0]
		for _, order := range o.orders {
			if order.ID != id {
				kept = append(kept, order)
			}
		}
		o.orders = kept
		o.mu.Unlock()
		return nil
	}

	o.mu.Lock()
	for i := range o.orders {
		if o.orders[i].ID == id {
			o.orders[i].Status = status
			break
		}
	}
	o.mu.Unlock()
	return nil
}

// All returns a copy of the local order list.
func (o *Orders) All() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]models.Order, len(o.orders))
	copy(out, o.orders)
	return out
}
