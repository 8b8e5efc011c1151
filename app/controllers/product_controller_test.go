package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/controllers"
	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/routes"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/shashiranjanraj/kashvi-store/pkg/database"
	"github.com/shashiranjanraj/kashvi-store/pkg/router"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer boots the full route table against an in-memory database and
// a temp-dir upload disk, mirroring the production wiring in internal/server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))

	root := t.TempDir()
	disk := storage.NewLocalDisk(root, "")

	catalog := services.NewCatalogService(repositories.NewProductRepository(db), disk, "uploads", "/uploads")
	orders := services.NewOrderService(repositories.NewOrderRepository(db))

	r := router.New()
	routes.Register(r, routes.API{
		Products:      controllers.NewProductController(catalog),
		Orders:        controllers.NewOrderController(orders),
		UploadsPrefix: "/uploads",
		UploadsRoot:   http.Dir(filepath.Join(root, "uploads")),
	})

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, raw
}

func TestProductsIndexEmpty(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodGet, srv.URL+"/api/products", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestProductsStoreJSON(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]interface{}{
		"name":        "Gold Ring",
		"price":       2499,
		"description": "22k gold ring",
		"imageUrl":    "https://cdn.example.com/ring.jpg",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var product models.Product
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Gold Ring", product.Name)
	assert.Equal(t, 2499.0, product.Price)
	assert.Equal(t, "https://cdn.example.com/ring.jpg", product.Image)
}

func TestProductsStoreValidation(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]interface{}{
		"price": 100,
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Errors, "name")
}

func TestProductsStoreMultipartUploadWins(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Pearl Earrings"))
	require.NoError(t, mw.WriteField("price", "1299"))
	require.NoError(t, mw.WriteField("imageUrl", "https://cdn.example.com/ignored.jpg"))
	fw, err := mw.CreateFormFile("image", "earrings.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/products", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var product models.Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&product))
	require.True(t, strings.HasPrefix(product.Image, "/uploads/"), "got image %q", product.Image)

	// the stored file must be served back under the same URL
	fileRes, err := http.Get(srv.URL + product.Image)
	require.NoError(t, err)
	defer fileRes.Body.Close()
	require.Equal(t, http.StatusOK, fileRes.StatusCode)
	served, err := io.ReadAll(fileRes.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(served))
}

func TestProductsDestroy(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]interface{}{
		"name":  "Bangle",
		"price": 450,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var product models.Product
	require.NoError(t, json.Unmarshal(raw, &product))

	url := fmt.Sprintf("%s/api/products/%d", srv.URL, product.ID)

	res, raw = doJSON(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(raw), "Product deleted")

	res, raw = doJSON(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, string(raw), "Product not found")
}

func TestProductsDestroyConcurrentFirstWins(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]interface{}{
		"name":  "Nose Pin",
		"price": 199,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var product models.Product
	require.NoError(t, json.Unmarshal(raw, &product))

	url := fmt.Sprintf("%s/api/products/%d", srv.URL, product.ID)

	var wg sync.WaitGroup
	codes := make(chan int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequest(http.MethodDelete, url, nil)
			r, err := http.DefaultClient.Do(req)
			if err != nil {
				codes <- 0
				return
			}
			r.Body.Close()
			codes <- r.StatusCode
		}()
	}
	wg.Wait()
	close(codes)

	got := map[int]int{}
	for code := range codes {
		got[code]++
	}
	assert.Equal(t, 1, got[http.StatusOK], "exactly one delete should win: %v", got)
	assert.Equal(t, 1, got[http.StatusNotFound], "the loser should see 404: %v", got)
}
