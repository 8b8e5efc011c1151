package models

import "encoding/json"

// Order statuses used by the admin flow. The column is free text; these are
// the two values the system itself writes.
const (
	StatusPending   = "Pending"
	StatusDelivered = "Delivered"
)

// Order is a placed order. Items is the raw JSON the client sent at
// checkout: a snapshot of the purchased products, deliberately not
// normalised against the products table (historical name/price survive
// later catalogue edits).
type Order struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Items  string  `gorm:"type:text"                json:"items"`
	Total  float64 `json:"total"`
	Status string  `gorm:"size:50;default:Pending"  json:"status"`
}

func (Order) TableName() string { return "orders" }

// LineItem is one entry of an order's Items blob: the product snapshot plus
// the quantity purchased.
type LineItem struct {
	ProductID   uint    `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
}

// EncodeItems serialises line items into the text stored on an order.
func EncodeItems(items []LineItem) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseItems decodes an order's Items blob. The store accepts whatever the
// client sent, so this can fail on historical rows; callers decide whether
// that is fatal.
func (o Order) ParseItems() ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal([]byte(o.Items), &items); err != nil {
		return nil, err
	}
	return items, nil
}
