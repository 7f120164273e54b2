package cart

import (
	"context"
	"time"
)

type Repository interface {
	// EnsureCart devuelve el carrito del usuario, creando el que recibe si no
	// existe todavía. Idempotente; la unicidad por UserID la garantiza el
	// adapter (constraint en Postgres, lock en memoria).
	EnsureCart(ctx context.Context, c Cart) (Cart, error)

	GetByUser(ctx context.Context, userID string) (Cart, error)

	ListItems(ctx context.Context, cartID string) ([]Item, error)

	// UpsertItem inserta la línea o, si ya existe una para el mismo
	// (CartID, ProductID), suma Quantity sobre la existente. Chequeo y
	// escritura son una sola operación atómica.
	UpsertItem(ctx context.Context, item Item) (Item, error)

	GetItem(ctx context.Context, itemID string) (Item, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int, updatedAt time.Time) (Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// ViewCache es un cache opcional de la vista del carrito (p.ej. Redis).
// Get devuelve (nil, nil) en miss.
type ViewCache interface {
	Get(ctx context.Context, userID string) (*View, error)
	Set(ctx context.Context, userID string, v View) error
	Invalidate(ctx context.Context, userID string) error
}
