package services

import (
	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
)

// OrderService wraps order placement and the admin status flow.
type OrderService struct {
	repo *repositories.OrderRepository
}

func NewOrderService(repo *repositories.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// List returns every order in insertion order.
func (s *OrderService) List() ([]models.Order, error) {
	return s.repo.All()
}

// Place records a new order. Items arrives as the raw JSON the client sent
// and is stored verbatim; the status always starts as Pending regardless of
// what the request carried.
func (s *OrderService) Place(items string, total float64) (models.Order, error) {
	order := models.Order{
		Items:  items,
		Total:  total,
		Status: models.StatusPending,
	}
	if err := s.repo.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	return order, nil
}

// UpdateStatus moves an order to the given status.
func (s *OrderService) UpdateStatus(id uint, status string) error {
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return err
	}

	metrics.OrdersUpdated.WithLabelValues(status).Inc()
	return nil
}

// Delete removes an order row.
func (s *OrderService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.OrdersDeleted.Inc()
	return nil
}
