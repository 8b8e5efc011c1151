package store

import (
	"context"
	"io"
	"sync"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/client/rest"
)

// Products mirrors the server-side catalogue.
type Products struct {
	mu       sync.RWMutex
	products []models.Product
	api      *rest.Client
}

func NewProducts(api *rest.Client) *Products {
	return &Products{api: api}
}

// Refresh replaces the local catalogue with the server's.
func (p *Products) Refresh(ctx context.Context) error {
	products, err := p.api.Products(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.products = products
	p.mu.Unlock()
	return nil
}

// Add creates a product on the server and appends it locally.
func (p *Products) Add(ctx context.Context, in rest.ProductInput) (models.Product, error) {
	created, err := p.api.CreateProduct(ctx, in)
	if err != nil {
		return models.Product{}, err
	}

	p.mu.Lock()
	p.products = append(p.products, created)
	p.mu.Unlock()
	return created, nil
}

// AddWithImage is Add with an uploaded image file.
func (p *Products) AddWithImage(ctx context.Context, in rest.ProductInput, filename string, image io.Reader) (models.Product, error) {
	created, err := p.api.CreateProductWithImage(ctx, in, filename, image)
	if err != nil {
		return models.Product{}, err
	}

	p.mu.Lock()
	p.products = append(p.products, created)
	p.mu.Unlock()
	return created, nil
}

// Delete removes a product on the server, then filters it out locally.
func (p *Products) Delete(ctx context.Context, id uint) error {
	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	kept := p.products[:0]
	for _, product := range p.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	p.products = kept
	p.mu.Unlock()
	return nil
}

// All returns a copy of the local catalogue.
func (p *Products) All() []models.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.Product, len(p.products))
	copy(out, p.products)
	return out
}
