package pets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pet representa el perfil de una mascota registrada por un usuario.
type Pet struct {
	ID     string
	UserID string

	Name  string
	Type  string // dog, cat, bird, ...
	Breed string

	DateOfBirth  *time.Time
	Weight       *decimal.Decimal // en kg
	DietaryNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
