package repositories

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// All returns every order in insertion order.
func (r *OrderRepository) All() ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	orders := make([]models.Order, 0) // non-nil so an empty list marshals as []
	err := r.db.Order("id").Find(&orders).Error
	return orders, err
}

// Find looks up an order by primary key.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, ErrNotFound
	}
	return order, err
}

// Create persists a new order and fills in the generated ID.
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.Create(order).Error
}

// UpdateStatus sets the status of an order in place.
// Returns ErrNotFound when the order does not exist. Existence is checked
// with a read first because UPDATE row counts are driver-dependent when the
// new value equals the old one.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return r.db.Model(&order).Update("status", status).Error
}

// Delete removes an order by id. Returns ErrNotFound when no row matched.
func (r *OrderRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	res := r.db.Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
