package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
