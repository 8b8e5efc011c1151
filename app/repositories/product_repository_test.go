package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))
	return db
}

func TestProductCreateAssignsID(t *testing.T) {
	repo := repositories.NewProductRepository(newTestDB(t))

	p := models.Product{Name: "Gold Ring", Price: 2499}
	require.NoError(t, repo.Create(&p))
	assert.NotZero(t, p.ID)
}

func TestProductAllEmptyIsNonNil(t *testing.T) {
	repo := repositories.NewProductRepository(newTestDB(t))

	products, err := repo.All()
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductFind(t *testing.T) {
	repo := repositories.NewProductRepository(newTestDB(t))

	p := models.Product{Name: "Silver Chain", Price: 899, Image: "/uploads/chain.jpg"}
	require.NoError(t, repo.Create(&p))

	got, err := repo.Find(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = repo.Find(p.ID + 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	repo := repositories.NewProductRepository(newTestDB(t))

	p := models.Product{Name: "Bangle", Price: 450}
	require.NoError(t, repo.Create(&p))

	require.NoError(t, repo.Delete(p.ID))
	assert.ErrorIs(t, repo.Delete(p.ID), repositories.ErrNotFound)
}
