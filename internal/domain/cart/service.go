package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-marketplace/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = errors.New("product not found")
)

// ProductSource resuelve productos del catálogo (lo implementa catalog.Service).
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductSource
	cache    ViewCache // puede ser nil
	now      func() time.Time
}

func NewService(repo Repository, products ProductSource, cache ViewCache) *Service {
	return &Service{
		repo:     repo,
		products: products,
		cache:    cache,
		now:      time.Now,
	}
}

// EnsureCart es el get-or-create explícito del carrito del usuario.
// Reemplaza al viejo "crear carrito como efecto colateral de un GET".
func (s *Service) EnsureCart(ctx context.Context, userID string) (Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Cart{}, ErrInvalidInput
	}

	now := s.now()
	return s.repo.EnsureCart(ctx, Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Get arma la vista del carrito con la proyección vigente de cada producto.
func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return View{}, ErrInvalidInput
	}

	if s.cache != nil {
		// cache best-effort: un error de cache no corta la lectura
		if v, err := s.cache.Get(ctx, userID); err == nil && v != nil {
			return *v, nil
		}
	}

	c, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return View{}, err
	}

	items, err := s.repo.ListItems(ctx, c.ID)
	if err != nil {
		return View{}, err
	}

	view := View{
		Cart:     c,
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
	}

	for _, it := range items {
		p, err := s.products.GetProduct(ctx, it.ProductID)
		if err != nil {
			return View{}, err
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}

		view.Lines = append(view.Lines, Line{
			Item:         it,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			Image:        image,
			CategoryName: p.Category.Name,
			LineTotal:    lineTotal,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, userID, view)
	}

	return view, nil
}

// AddItem agrega quantity unidades del producto. Si ya hay una línea para ese
// producto, la cantidad se SUMA (no se reemplaza); el upsert del repo
// garantiza una sola línea por producto aun con requests concurrentes.
// La cantidad no se recorta contra stock (gap conocido del sistema original).
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (Item, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if userID == "" || productID == "" {
		return Item{}, ErrInvalidInput
	}
	if quantity < 1 {
		return Item{}, ErrInvalidInput
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Item{}, ErrProductNotFound
		}
		return Item{}, err
	}

	c, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return Item{}, err
	}

	now := s.now()
	it, err := s.repo.UpsertItem(ctx, Item{
		ID:        uuid.NewString(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Item{}, err
	}

	s.invalidate(ctx, userID)
	return it, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (Item, error) {
	userID = strings.TrimSpace(userID)
	itemID = strings.TrimSpace(itemID)
	if userID == "" || itemID == "" {
		return Item{}, ErrInvalidInput
	}
	if quantity < 1 {
		return Item{}, ErrInvalidInput
	}

	if err := s.authorizeItem(ctx, userID, itemID); err != nil {
		return Item{}, err
	}

	it, err := s.repo.UpdateItemQuantity(ctx, itemID, quantity, s.now())
	if err != nil {
		return Item{}, err
	}

	s.invalidate(ctx, userID)
	return it, nil
}

// RemoveItem borra la línea. Borrar un id inexistente es not found, no éxito
// silencioso.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	userID = strings.TrimSpace(userID)
	itemID = strings.TrimSpace(itemID)
	if userID == "" || itemID == "" {
		return ErrInvalidInput
	}

	if err := s.authorizeItem(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// authorizeItem verifica que la línea pertenezca al carrito del usuario.
// Una línea ajena responde not found (no filtramos carritos de otros).
func (s *Service) authorizeItem(ctx context.Context, userID, itemID string) error {
	it, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return ErrNotFound
	}

	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if it.CartID != c.ID {
		return ErrNotFound
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, userID)
}
