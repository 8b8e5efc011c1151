package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/shashiranjanraj/kashvi-store/pkg/bind"
	"github.com/shashiranjanraj/kashvi-store/pkg/response"
	"github.com/shashiranjanraj/kashvi-store/pkg/validate"
)

// productInput is the product-creation request body. The same shape is used
// for JSON bodies and for multipart form fields.
type productInput struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	ImageURL    string  `json:"imageUrl"    validate:"nullable,url"`
}

// ProductController exposes the catalogue endpoints.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.List()
	if err != nil {
		response.ServerError(w, err)
		return
	}
	response.JSON(w, products)
}

// Store handles POST /api/products. Accepts either a JSON body or a
// multipart form; in the multipart case an uploaded "image" file wins over
// the imageUrl field.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var (
		in     productInput
		upload *services.Upload
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, up, cleanup, err := parseProductForm(r)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		defer cleanup()
		in, upload = parsed, up

		if errs := validate.Struct(&in); validate.HasErrors(errs) {
			response.ValidationError(w, errs)
			return
		}
	} else {
		errs, err := bind.JSON(r, &in)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		if errs != nil {
			response.ValidationError(w, errs)
			return
		}
	}

	product, err := c.catalog.Create(services.CreateInput{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}, upload)
	if err != nil {
		response.ServerError(w, err)
		return
	}

	response.JSON(w, product)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.Message(w, http.StatusNotFound, "Product not found", map[string]interface{}{"id": chi.URLParam(r, "id")})
		return
	}

	if err := c.catalog.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Message(w, http.StatusNotFound, "Product not found", map[string]interface{}{"id": id})
			return
		}
		response.ServerError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Product deleted", map[string]interface{}{"id": id})
}

// parseProductForm reads the multipart variant of the creation request.
// The returned Upload, when non-nil, holds an open multipart file; cleanup
// closes it and is safe to call unconditionally.
func parseProductForm(r *http.Request) (productInput, *services.Upload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return productInput{}, nil, noop, errors.New("invalid multipart form")
	}

	var in productInput
	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.ImageURL = r.FormValue("imageUrl")

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return productInput{}, nil, noop, errors.New("The price field must be a number.")
		}
		in.Price = price
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, noop, nil
		}
		return productInput{}, nil, noop, errors.New("invalid image upload")
	}

	cleanup := func() { file.Close() } //nolint:errcheck
	return in, &services.Upload{Filename: header.Filename, Content: file}, cleanup, nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
