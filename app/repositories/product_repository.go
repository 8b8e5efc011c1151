package repositories

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row does not exist. Both repositories share
// it so services can map it to a 404 in one place.
var ErrNotFound = errors.New("record not found")

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns every product in insertion order.
func (r *ProductRepository) All() ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	products := make([]models.Product, 0) // non-nil so an empty list marshals as []
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, ErrNotFound
	}
	return product, err
}

// Create persists a new product and fills in the generated ID.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.Create(product).Error
}

// Delete removes a product by id. Returns ErrNotFound when no row matched,
// so two concurrent deletes resolve first-wins.
func (r *ProductRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
