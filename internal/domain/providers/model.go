package providers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider es un prestador de servicios (veterinaria, peluquería, paseador).
type Provider struct {
	ID          string
	Name        string
	Type        string
	Address     string
	Phone       string
	Email       string
	Description string

	CreatedAt time.Time
}

type Review struct {
	ID         string
	ProviderID string
	Rating     int // 1..5
	Comment    string

	CreatedAt time.Time
}

// ServiceSummary es la proyección de un servicio para el directorio de providers.
type ServiceSummary struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	DurationMin int
}

// Listing es el provider con sus relaciones tal como sale del repo;
// el rating promedio se calcula en el service, no se persiste.
type Listing struct {
	Provider
	Services []ServiceSummary
	Ratings  []int
}
