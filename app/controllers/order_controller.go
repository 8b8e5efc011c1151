package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/shashiranjanraj/kashvi-store/pkg/bind"
	"github.com/shashiranjanraj/kashvi-store/pkg/response"
)

// orderInput is the checkout request body. Items is kept as raw JSON and
// stored verbatim on the order.
type orderInput struct {
	Items json.RawMessage `json:"items" validate:"required"`
	Total float64         `json:"total" validate:"required,gte=0"`
}

// orderStatusInput carries the new status. The value is free text; the
// clients decide the vocabulary (Pending, Delivered, ...), the server only
// requires that something is sent.
type orderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderController exposes the order endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index handles GET /api/orders.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.List()
	if err != nil {
		response.ServerError(w, err)
		return
	}
	response.JSON(w, orders)
}

// Store handles POST /api/orders.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Place(string(in.Items), in.Total)
	if err != nil {
		response.ServerError(w, err)
		return
	}

	response.JSON(w, order)
}

// Update handles PUT /api/orders/{id}.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.Message(w, http.StatusNotFound, "Order not found", map[string]interface{}{"id": chi.URLParam(r, "id")})
		return
	}

	var in orderStatusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.UpdateStatus(id, in.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Message(w, http.StatusNotFound, "Order not found", map[string]interface{}{"id": id})
			return
		}
		response.ServerError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Order updated", map[string]interface{}{"id": id, "status": in.Status})
}

// Destroy handles DELETE /api/orders/{id}.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.Message(w, http.StatusNotFound, "Order not found", map[string]interface{}{"id": chi.URLParam(r, "id")})
		return
	}

	if err := c.orders.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Message(w, http.StatusNotFound, "Order not found", map[string]interface{}{"id": id})
			return
		}
		response.ServerError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Order deleted", map[string]interface{}{"id": id})
}
