package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-care-marketplace/internal/domain/pets"

	"github.com/shopspring/decimal"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, user_id,
			name, type, breed,
			date_of_birth, weight, dietary_notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Type,
		p.Breed,
		toNullDate(p.DateOfBirth),
		toNullDecimal(p.Weight),
		p.DietaryNotes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, type, breed,
			date_of_birth, weight, dietary_notes,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, type, breed,
			date_of_birth, weight, dietary_notes,
			created_at, updated_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		dob    sql.NullTime
		weight decimal.NullDecimal
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Type,
		&p.Breed,
		&dob,
		&weight,
		&p.DietaryNotes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if dob.Valid {
		t := dob.Time
		// ojo: date_of_birth es date; pgx lo mapea a time.Time midnight UTC
		p.DateOfBirth = &t
	}
	if weight.Valid {
		d := weight.Decimal
		p.Weight = &d
	}

	return p, nil
}

// date_of_birth es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{Valid: false}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
