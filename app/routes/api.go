// Package routes declares the store's HTTP surface.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/kashvi-store/app/controllers"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
	"github.com/shashiranjanraj/kashvi-store/pkg/router"
)

// API bundles the controllers the route table needs.
type API struct {
	Products *controllers.ProductController
	Orders   *controllers.OrderController

	// UploadsPrefix/UploadsRoot mount the uploaded-image directory as
	// static files. UploadsRoot may be nil to skip the mount (tests).
	UploadsPrefix string
	UploadsRoot   http.FileSystem
}

// Register mounts every route on r.
func Register(r *router.Router, api API) {
	g := r.Group("/api")

	g.Get("/products", "products.index", api.Products.Index)
	g.Post("/products", "products.store", api.Products.Store)
	g.Delete("/products/{id}", "products.destroy", api.Products.Destroy)

	g.Get("/orders", "orders.index", api.Orders.Index)
	g.Post("/orders", "orders.store", api.Orders.Store)
	g.Put("/orders/{id}", "orders.update", api.Orders.Update)
	g.Delete("/orders/{id}", "orders.destroy", api.Orders.Destroy)

	if api.UploadsRoot != nil {
		r.Static(api.UploadsPrefix, api.UploadsRoot)
	}

	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)
}
