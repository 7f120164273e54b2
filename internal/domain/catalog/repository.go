package catalog

import "context"

// Sort define el orden del listado de productos.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
)

// ParseSort normaliza el query param; cualquier valor desconocido cae en newest.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	default:
		return SortNewest
	}
}

type ProductFilter struct {
	CategoryID string
	Search     string // substring case-insensitive sobre name O description
	Sort       Sort
}

type Repository interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)

	// ListServices filtra por type exacto; serviceType vacío = todos.
	ListServices(ctx context.Context, serviceType string) ([]CareService, error)
	GetService(ctx context.Context, id string) (CareService, error)
}
