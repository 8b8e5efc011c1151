// Package rest is the typed HTTP client for the store API. It is the
// transport layer under client/store; application code normally talks to
// the stores, not to this package directly.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/kashvi-store/app/models"
)

// ErrNotFound is returned for 404 responses, wrapped with the server's
// message so errors.Is still matches.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the store API.
type APIError struct {
	Status  int
	Message string
	Errors  map[string]string // field errors on validation failures
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api: %d: %s", e.Status, e.Message)
}

// Client calls the store API.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the API at base (e.g. "http://localhost:5000").
// Pass nil to use a default client with a 10s timeout.
func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductInput is the product-creation payload.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products", nil, &products)
	return products, err
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodPost, "/api/products", in, &product)
	return product, err
}

// CreateProductWithImage sends the multipart variant with an image file.
func (c *Client) CreateProductWithImage(ctx context.Context, in ProductInput, filename string, image io.Reader) (models.Product, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        in.Name,
		"price":       fmt.Sprintf("%g", in.Price),
		"description": in.Description,
		"imageUrl":    in.ImageURL,
	}
	for key, val := range fields {
		if val == "" {
			continue
		}
		if err := mw.WriteField(key, val); err != nil {
			return models.Product{}, err
		}
	}

	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return models.Product{}, err
	}
	if _, err := io.Copy(fw, image); err != nil {
		return models.Product{}, err
	}
	if err := mw.Close(); err != nil {
		return models.Product{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/products", &buf)
	if err != nil {
		return models.Product{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var product models.Product
	err = c.send(req, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders)
	return orders, err
}

// PlaceOrder checks out the given line items.
func (c *Client) PlaceOrder(ctx context.Context, items []models.LineItem, total float64) (models.Order, error) {
	body := map[string]interface{}{
		"items": items,
		"total": total,
	}

	var order models.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", body, &order)
	return order, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d", id), body, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil)
}

// ── Transport ────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		return decodeError(res.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// decodeError maps the API's failure bodies: {"message": ...} for client
// errors, {"error": ...} for server errors.
func decodeError(status int, raw []byte) error {
	var body struct {
		Message string            `json:"message"`
		Err     string            `json:"error"`
		Errors  map[string]string `json:"errors"`
	}
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Err
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}

	return &APIError{Status: status, Message: msg, Errors: body.Errors}
}
