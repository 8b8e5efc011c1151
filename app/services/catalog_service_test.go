package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/shashiranjanraj/kashvi-store/pkg/database"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database. The named shared-cache
// DSN keeps the pool's connections pointed at the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))
	return db
}

func newCatalog(t *testing.T) (*services.CatalogService, storage.Disk) {
	t.Helper()

	db := newTestDB(t)
	disk := storage.NewLocalDisk(t.TempDir(), "")
	svc := services.NewCatalogService(repositories.NewProductRepository(db), disk, "uploads", "/uploads")
	return svc, disk
}

func TestCatalogListEmpty(t *testing.T) {
	svc, _ := newCatalog(t)

	products, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogCreateAndList(t *testing.T) {
	svc, _ := newCatalog(t)

	created, err := svc.Create(services.CreateInput{
		Name:        "Gold Ring",
		Price:       2499,
		Description: "22k gold ring",
		ImageURL:    "https://cdn.example.com/ring.jpg",
	}, nil)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "https://cdn.example.com/ring.jpg", created.Image)

	products, err := svc.List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created, products[0])
}

func TestCatalogCreateWithoutImage(t *testing.T) {
	svc, _ := newCatalog(t)

	created, err := svc.Create(services.CreateInput{Name: "Silver Chain", Price: 899}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", created.Image)
}

func TestCatalogCreateUploadWinsOverImageURL(t *testing.T) {
	svc, disk := newCatalog(t)

	created, err := svc.Create(services.CreateInput{
		Name:     "Pearl Earrings",
		Price:    1299,
		ImageURL: "https://cdn.example.com/ignored.jpg",
	}, &services.Upload{
		Filename: "earrings.jpg",
		Content:  strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(created.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(created.Image, ".jpg"))

	name := strings.TrimPrefix(created.Image, "/uploads/")
	assert.True(t, disk.Exists("uploads/"+name))
}

func TestCatalogDeleteRemovesUploadedFile(t *testing.T) {
	svc, disk := newCatalog(t)

	created, err := svc.Create(services.CreateInput{Name: "Bangle", Price: 450}, &services.Upload{
		Filename: "bangle.png",
		Content:  strings.NewReader("png bytes"),
	})
	require.NoError(t, err)

	name := strings.TrimPrefix(created.Image, "/uploads/")
	require.True(t, disk.Exists("uploads/"+name))

	require.NoError(t, svc.Delete(created.ID))

	assert.False(t, disk.Exists("uploads/"+name))

	products, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogDeleteKeepsExternalImage(t *testing.T) {
	svc, _ := newCatalog(t)

	created, err := svc.Create(services.CreateInput{
		Name:     "Nose Pin",
		Price:    199,
		ImageURL: "https://cdn.example.com/pin.jpg",
	}, nil)
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(created.ID))
}

func TestCatalogDeleteMissing(t *testing.T) {
	svc, _ := newCatalog(t)

	err := svc.Delete(9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
