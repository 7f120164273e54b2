package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-care-marketplace/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, user_id, service_id, pet_id, provider_id,
	start_at, end_at, status, notes,
	created_at, updated_at`

// Create ejecuta el chequeo de solapamiento y el insert en una sola
// transacción serializable: dos requests concurrentes por el mismo slot no
// pueden pasar las dos el chequeo.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Intervalos half-open: [start_at, end_at) solapa [$2, $3) sii
	// start_at < $3 AND end_at > $2.
	var taken bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE provider_id = $1
			  AND status = 'scheduled'
			  AND start_at < $3
			  AND end_at > $2
		)
	`, a.ProviderID, a.StartAt, a.EndAt).Scan(&taken)
	if err != nil {
		return err
	}
	if taken {
		return appointments.ErrSlotTaken
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.UserID,
		a.ServiceID,
		a.PetID,
		a.ProviderID,
		a.StartAt,
		a.EndAt,
		a.Status,
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY start_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id string, status appointments.Status, updatedAt time.Time) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE appointments
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+appointmentColumns+`
	`, id, status, updatedAt)

	a, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.ServiceID,
		&a.PetID,
		&a.ProviderID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}
