package providers

import "context"

type Repository interface {
	// List filtra por type exacto; providerType vacío = todos.
	List(ctx context.Context, providerType string) ([]Listing, error)
	GetByID(ctx context.Context, id string) (Provider, error)
}
