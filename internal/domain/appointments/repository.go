package appointments

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserta el turno sólo si ningún otro turno scheduled del mismo
	// provider solapa [StartAt, EndAt). Chequeo e insert son una sola
	// operación atómica (transacción en Postgres, un solo lock en memoria);
	// devuelve ErrSlotTaken si el slot está ocupado. Turnos cancelled o
	// completed nunca bloquean un slot.
	Create(ctx context.Context, a Appointment) error

	GetByID(ctx context.Context, id string) (Appointment, error)

	// ListByUser ordena por StartAt ascendente.
	ListByUser(ctx context.Context, userID string) ([]Appointment, error)

	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (Appointment, error)
}
