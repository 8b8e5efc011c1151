// Package migrations holds the store's schema migrations. Each file
// registers itself; importing the package for side effects is enough to
// populate the runner's registry.
package migrations

import (
	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_products_table", &CreateProductsTable{})
}

type CreateProductsTable struct{}

func (CreateProductsTable) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.Product{})
}

func (CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}
