package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pet-care-marketplace/internal/domain/cart"
)

type cartRepo struct {
	mu     sync.Mutex
	byUser map[string]cart.Cart
	items  map[string]cart.Item // por itemID
}

func NewCartRepo() cart.Repository {
	return &cartRepo{
		byUser: make(map[string]cart.Cart),
		items:  make(map[string]cart.Item),
	}
}

func (r *cartRepo) EnsureCart(ctx context.Context, c cart.Cart) (cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUser[c.UserID]; ok {
		return existing, nil
	}
	r.byUser[c.UserID] = c
	return c, nil
}

func (r *cartRepo) GetByUser(ctx context.Context, userID string) (cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byUser[userID]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return c, nil
}

func (r *cartRepo) ListItems(ctx context.Context, cartID string) ([]cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]cart.Item, 0)
	for _, it := range r.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// UpsertItem: chequeo de línea existente e inserción/suma bajo el mismo lock,
// así dos AddItem concurrentes para el mismo producto nunca duplican línea.
func (r *cartRepo) UpsertItem(ctx context.Context, item cart.Item) (cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			existing.UpdatedAt = item.UpdatedAt
			r.items[id] = existing
			return existing, nil
		}
	}

	r.items[item.ID] = item
	return item, nil
}

func (r *cartRepo) GetItem(ctx context.Context, itemID string) (cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[itemID]
	if !ok {
		return cart.Item{}, cart.ErrNotFound
	}
	return it, nil
}

func (r *cartRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int, updatedAt time.Time) (cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[itemID]
	if !ok {
		return cart.Item{}, cart.ErrNotFound
	}

	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	r.items[itemID] = it
	return it, nil
}

func (r *cartRepo) DeleteItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return cart.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}
