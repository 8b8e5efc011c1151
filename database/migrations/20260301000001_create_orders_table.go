package migrations

import (
	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000001_create_orders_table", &CreateOrdersTable{})
}

type CreateOrdersTable struct{}

func (CreateOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.Order{})
}

func (CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}
