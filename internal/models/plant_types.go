package models

// Plant is the model for the 'plant' table.
// Field order is the JSON key order: id, name, image, price, is_in_stock.
type Plant struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Image     string  `json:"image" db:"image"`
	Price     float64 `json:"price" db:"price"`
	IsInStock bool    `json:"is_in_stock" db:"is_in_stock"`
}
