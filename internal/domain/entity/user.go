package entity

import "time"

// User representa un usuario/tenant del sistema. Cada usuario es dueño de sus
// productos, documentos y asientos del ledger; no hay visibilidad cruzada.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
