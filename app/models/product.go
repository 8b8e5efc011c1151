package models

// Product is a catalogue row. Image holds either an external URL or the
// server-relative path of an uploaded file; it may be empty.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:255"  json:"name"`
	Price       float64 `json:"price"`
	Image       string  `gorm:"type:text" json:"image"`
	Description string  `gorm:"type:text" json:"description"`
}

func (Product) TableName() string { return "products" }
