package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-marketplace/internal/domain/providers"
)

type ProvidersRepo struct {
	db *sql.DB
}

func NewProvidersRepo(db *sql.DB) *ProvidersRepo {
	return &ProvidersRepo{db: db}
}

// List arma el directorio en tres queries (providers, services, ratings) y
// agrupa en memoria; evita el N+1 sin meter SQL con agregaciones anidadas.
func (r *ProvidersRepo) List(ctx context.Context, providerType string) ([]providers.Listing, error) {
	q := `
		SELECT id, name, type, address, phone, email, description, created_at
		FROM service_providers
	`
	var args []any
	if providerType != "" {
		q += " WHERE type = $1"
		args = append(args, providerType)
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]providers.Listing, 0)
	index := make(map[string]int)

	for rows.Next() {
		var p providers.Provider
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Type,
			&p.Address,
			&p.Phone,
			&p.Email,
			&p.Description,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		index[p.ID] = len(out)
		out = append(out, providers.Listing{
			Provider: p,
			Services: make([]providers.ServiceSummary, 0),
			Ratings:  make([]int, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	svcRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, duration_min, provider_id
		FROM services
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer svcRows.Close()

	for svcRows.Next() {
		var (
			s          providers.ServiceSummary
			providerID string
		)
		if err := svcRows.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMin, &providerID); err != nil {
			return nil, err
		}
		if i, ok := index[providerID]; ok {
			out[i].Services = append(out[i].Services, s)
		}
	}
	if err := svcRows.Err(); err != nil {
		return nil, err
	}

	revRows, err := r.db.QueryContext(ctx, `
		SELECT provider_id, rating
		FROM reviews
	`)
	if err != nil {
		return nil, err
	}
	defer revRows.Close()

	for revRows.Next() {
		var (
			providerID string
			rating     int
		)
		if err := revRows.Scan(&providerID, &rating); err != nil {
			return nil, err
		}
		if i, ok := index[providerID]; ok {
			out[i].Ratings = append(out[i].Ratings, rating)
		}
	}

	return out, revRows.Err()
}

func (r *ProvidersRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return providers.Provider{}, providers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, address, phone, email, description, created_at
		FROM service_providers
		WHERE id = $1
	`, id)

	var p providers.Provider
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Type,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.Description,
		&p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return providers.Provider{}, providers.ErrNotFound
		}
		return providers.Provider{}, err
	}

	return p, nil
}
