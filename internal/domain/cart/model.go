package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart es el carrito de un usuario; a lo sumo uno por usuario.
type Cart struct {
	ID     string
	UserID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item es una línea del carrito: a lo sumo una por (CartID, ProductID).
type Item struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int // siempre >= 1

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line es una línea con la proyección del producto al momento de la lectura.
// El precio NO está snapshoteado: se lee el precio vigente del producto, así
// que un cambio de precio altera subtotales de carritos abiertos.
type Line struct {
	Item

	ProductName  string
	ProductPrice decimal.Decimal
	Image        string
	CategoryName string

	LineTotal decimal.Decimal
}

// View es el carrito armado para la respuesta (y para el cache).
type View struct {
	Cart

	Lines    []Line
	Subtotal decimal.Decimal
}
