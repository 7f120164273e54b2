package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-care-marketplace/internal/domain/cart"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// EnsureCart: el unique index sobre user_id hace el get-or-create seguro ante
// requests concurrentes; el INSERT perdedor no hace nada y el SELECT final
// devuelve el carrito ganador.
func (r *CartRepo) EnsureCart(ctx context.Context, c cart.Cart) (cart.Cart, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`, c.ID, c.UserID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return cart.Cart{}, err
	}

	return r.GetByUser(ctx, c.UserID)
}

func (r *CartRepo) GetByUser(ctx context.Context, userID string) (cart.Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return cart.Cart{}, cart.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID)

	var c cart.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return cart.Cart{}, cart.ErrNotFound
		}
		return cart.Cart{}, err
	}
	return c, nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]cart.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cart.Item, 0)
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}

	return out, rows.Err()
}

// UpsertItem: un solo statement; el unique index (cart_id, product_id) decide
// insert vs. suma de cantidad. Sin ventana read-then-write.
func (r *CartRepo) UpsertItem(ctx context.Context, item cart.Item) (cart.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at
	`, item.ID, item.CartID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt)

	var it cart.Item
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return cart.Item{}, err
	}
	return it, nil
}

func (r *CartRepo) GetItem(ctx context.Context, itemID string) (cart.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1
	`, itemID)

	var it cart.Item
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return cart.Item{}, cart.ErrNotFound
		}
		return cart.Item{}, err
	}
	return it, nil
}

func (r *CartRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int, updatedAt time.Time) (cart.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at
	`, itemID, quantity, updatedAt)

	var it cart.Item
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return cart.Item{}, cart.ErrNotFound
		}
		return cart.Item{}, err
	}
	return it, nil
}

func (r *CartRepo) DeleteItem(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cart.ErrNotFound
	}
	return nil
}
