package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-care-marketplace/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.stock, p.images, p.category_id,
	c.name, c.description, c.image,
	p.created_at, p.updated_at`

func (r *CatalogRepo) ListProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	var (
		conds []string
		args  []any
	)

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE '%%' || $%d || '%%' OR p.description ILIKE '%%' || $%d || '%%')", n, n))
	}

	q := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
	`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	switch f.Sort {
	case catalog.SortPriceLow:
		q += " ORDER BY p.price ASC"
	case catalog.SortPriceHigh:
		q += " ORDER BY p.price DESC"
	default:
		q += " ORDER BY p.created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Product{}, catalog.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

const serviceColumns = `
	s.id, s.name, s.description, s.price, s.duration_min, s.type, s.provider_id,
	sp.name, sp.type,
	s.created_at`

func (r *CatalogRepo) ListServices(ctx context.Context, serviceType string) ([]catalog.CareService, error) {
	q := `
		SELECT ` + serviceColumns + `
		FROM services s
		JOIN service_providers sp ON sp.id = s.provider_id
	`
	var args []any
	if serviceType != "" {
		q += " WHERE s.type = $1"
		args = append(args, serviceType)
	}
	q += " ORDER BY s.created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.CareService, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *CatalogRepo) GetService(ctx context.Context, id string) (catalog.CareService, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.CareService{}, catalog.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+serviceColumns+`
		FROM services s
		JOIN service_providers sp ON sp.id = s.provider_id
		WHERE s.id = $1
	`, id)

	s, err := scanService(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.CareService{}, catalog.ErrNotFound
		}
		return catalog.CareService{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var (
		p      catalog.Product
		images []byte // jsonb
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&images,
		&p.CategoryID,
		&p.Category.Name,
		&p.Category.Description,
		&p.Category.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return catalog.Product{}, err
	}

	p.Category.ID = p.CategoryID
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return catalog.Product{}, fmt.Errorf("decode product images: %w", err)
		}
	}
	return p, nil
}

func scanService(row rowScanner) (catalog.CareService, error) {
	var s catalog.CareService
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.DurationMin,
		&s.Type,
		&s.ProviderID,
		&s.Provider.Name,
		&s.Provider.Type,
		&s.CreatedAt,
	); err != nil {
		return catalog.CareService{}, err
	}
	s.Provider.ID = s.ProviderID
	return s, nil
}
