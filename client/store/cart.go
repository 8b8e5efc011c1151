// Package store holds the client-side state containers: the product
// catalogue, the order list, and the shopping cart. Each container keeps an
// in-memory copy of server state behind a mutex and mutates it through the
// rest client.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/client/rest"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
)

// CartItem is a product in the cart plus how many of it.
type CartItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Saver persists the cart between sessions.
type Saver interface {
	Save(items []CartItem) error
	Load() ([]CartItem, error)
}

// Cart is the shopping cart. All methods are safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []CartItem // insertion order preserved
	saver Saver
	api   *rest.Client
}

// NewCart builds a cart. saver may be nil (no persistence); when non-nil the
// previously saved cart is loaded immediately.
func NewCart(api *rest.Client, saver Saver) *Cart {
	c := &Cart{api: api, saver: saver}
	if saver != nil {
		if items, err := saver.Load(); err == nil {
			c.items = items
		}
	}
	return c
}

// Add puts one unit of product in the cart, incrementing the quantity when
// the product is already there.
func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			c.persist()
			return
		}
	}

	c.items = append(c.items, CartItem{Product: product, Quantity: 1})
	c.persist()
}

// Remove drops a product from the cart entirely.
func (c *Cart) Remove(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.persist()
}

// SetQuantity sets the quantity for a product. Anything below one removes
// the product from the cart.
func (c *Cart) SetQuantity(productID uint, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the cart value: the sum of price times quantity over every item.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Checkout places an order for the cart's contents and clears the cart on
// success. The cart is left untouched when the server rejects the order.
func (c *Cart) Checkout(ctx context.Context) (models.Order, error) {
	c.mu.Lock()
	items := make([]models.LineItem, 0, len(c.items))
	var total float64
	for _, item := range c.items {
		items = append(items, models.LineItem{
			ProductID:   item.Product.ID,
			Name:        item.Product.Name,
			Price:       item.Product.Price,
			Image:       item.Product.Image,
			Description: item.Product.Description,
			Quantity:    item.Quantity,
		})
		total += item.Product.Price * float64(item.Quantity)
	}
	c.mu.Unlock()

	if len(items) == 0 {
		return models.Order{}, errors.New("cart is empty")
	}
	if c.api == nil {
		return models.Order{}, errors.New("cart has no api client")
	}

	order, err := c.api.PlaceOrder(ctx, items, total)
	if err != nil {
		return models.Order{}, err
	}

	c.Clear()
	return order, nil
}

// persist saves the cart; callers must hold c.mu. Save failures are ignored,
// the in-memory cart stays authoritative.
func (c *Cart) persist() {
	if c.saver == nil {
		return
	}
	_ = c.saver.Save(c.items)
}

// ── Disk persistence ─────────────────────────────────────────────────────────

// DiskSaver keeps the cart as a JSON file on a storage disk, the client-side
// counterpart of the browser's localStorage cart.
type DiskSaver struct {
	Disk storage.Disk
	Path string
}

func (s *DiskSaver) Save(items []CartItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Disk.Put(s.Path, b)
}

func (s *DiskSaver) Load() ([]CartItem, error) {
	if !s.Disk.Exists(s.Path) {
		return nil, nil
	}

	b, err := s.Disk.Get(s.Path)
	if err != nil {
		return nil, err
	}

	var items []CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}
