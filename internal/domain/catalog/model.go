package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa productos del shop (comida, grooming, accesorios, salud).
type Category struct {
	ID          string
	Name        string
	Description string
	Image       string

	CreatedAt time.Time
}

// Product es un producto físico del catálogo.
type Product struct {
	ID          string
	Name        string
	Description string

	Price  decimal.Decimal
	Stock  int
	Images []string // ordenadas; la primera es la imagen principal

	CategoryID string
	Category   Category

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CareService es un servicio ofrecido por un provider (baño, consulta, paseo).
// Duration en minutos; define el largo del turno al agendar.
type CareService struct {
	ID          string
	Name        string
	Description string

	Price       decimal.Decimal
	DurationMin int
	Type        string

	ProviderID string
	Provider   ProviderSummary

	CreatedAt time.Time
}

// ProviderSummary es la proyección mínima del provider que acompaña un servicio.
type ProviderSummary struct {
	ID   string
	Name string
	Type string
}
