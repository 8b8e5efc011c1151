package seeders

import (
	"github.com/shashiranjanraj/kashvi-store/app/models"
	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
	"gorm.io/gorm"
)

// ProductSeeder loads a starter catalogue. It only seeds an empty table.
type ProductSeeder struct{}

func (ProductSeeder) Name() string { return "products" }

func (ProductSeeder) Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("seed: products table not empty, skipping")
		return nil
	}

	products := []models.Product{
		{Name: "Classic Gold Ring", Price: 2499, Description: "22k gold ring with a plain polished band."},
		{Name: "Kundan Necklace Set", Price: 8999, Description: "Traditional kundan necklace with matching earrings."},
		{Name: "Silver Oxidised Jhumkas", Price: 649, Description: "Handcrafted oxidised silver jhumka earrings."},
		{Name: "Pearl Drop Earrings", Price: 1299, Description: "Freshwater pearl drops on sterling silver hooks."},
		{Name: "Rose Gold Bracelet", Price: 3499, Description: "Slim rose gold chain bracelet with a toggle clasp."},
		{Name: "Antique Temple Bangle", Price: 1899, Description: "Temple-work brass bangle with antique finish."},
	}

	return db.Create(&products).Error
}
