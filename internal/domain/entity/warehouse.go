package entity

import "time"

// Warehouse representa una bodega o ubicación física de inventario.
type Warehouse struct {
	ID        string
	OwnerID   string
	Name      string
	Address   string
	Type      string // ej: "principal", "tránsito"
	CreatedAt time.Time
	UpdatedAt time.Time
}
