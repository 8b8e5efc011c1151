// Package seeders fills a fresh database with sample data for local
// development and demos.
package seeders

import (
	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
	"gorm.io/gorm"
)

// Seeder is one named seeding step. Seeders must be idempotent; Run is
// called on every `store db:seed` invocation.
type Seeder interface {
	Name() string
	Run(db *gorm.DB) error
}

var all = []Seeder{
	&ProductSeeder{},
}

// Run executes every registered seeder in order.
func Run(db *gorm.DB) error {
	for _, s := range all {
		logger.Info("seed: running", "name", s.Name())
		if err := s.Run(db); err != nil {
			return err
		}
	}
	return nil
}
