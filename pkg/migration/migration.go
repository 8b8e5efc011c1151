// Package migration runs registered schema migrations in batches, so
// `migrate:rollback` can undo exactly the set that last ran.
//
// Migrations self-register from database/migrations via init:
//
//	func init() {
//	    migration.Register("20260301000000_create_products_table", &CreateProductsTable{})
//	}
package migration

import (
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
	"gorm.io/gorm"
)

// Migration applies or reverses one schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record tracks one applied migration in the store_migrations table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "store_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration under name. Timestamp-prefixed names keep the
// registry in chronological order when sorted.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner applies the registry against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner { return &Runner{db: db} }

// EnsureTable creates the tracking table when missing.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&record{})
}

// Pending lists registered migrations that have not run yet, oldest first.
func (r *Runner) Pending() ([]string, error) {
	applied, err := r.appliedByName()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range registry {
		if _, ok := applied[e.name]; !ok {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run applies every pending migration as one batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending()
	if err != nil {
		return fmt.Errorf("migration: pending: %w", err)
	}
	if len(pending) == 0 {
		logger.Info("migration: nothing to migrate")
		return nil
	}

	byName := r.registryByName()
	batch := r.lastBatch() + 1

	for _, name := range pending {
		logger.Info("migration: running", "name", name)
		if err := byName[name].Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", name, err)
		}
		if err := r.db.Create(&record{Name: name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", name, err)
		}
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		logger.Info("migration: nothing to roll back")
		return nil
	}

	var applied []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&applied).Error; err != nil {
		return err
	}

	byName := r.registryByName()
	for _, rec := range applied {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

// Status prints each registered migration with its applied batch.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	applied, err := r.appliedByName()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	for _, e := range registry {
		if rec, ok := applied[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "ran", rec.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "pending")
		}
	}
	return nil
}

func (r *Runner) appliedByName() (map[string]record, error) {
	var applied []record
	if err := r.db.Find(&applied).Error; err != nil {
		return nil, err
	}

	out := make(map[string]record, len(applied))
	for _, rec := range applied {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) registryByName() map[string]Migration {
	out := make(map[string]Migration, len(registry))
	for _, e := range registry {
		out[e.name] = e.m
	}
	return out
}

func (r *Runner) lastBatch() int {
	var row struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&row)
	return row.Max
}
