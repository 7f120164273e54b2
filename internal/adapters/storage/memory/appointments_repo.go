package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pet-care-marketplace/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.Mutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

// Create: chequeo de solapamiento e insert bajo el mismo lock; dos Book
// concurrentes para el mismo slot nunca pasan los dos.
func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.ProviderID != a.ProviderID {
			continue
		}
		if existing.Status != appointments.StatusScheduled {
			continue
		}
		if appointments.Overlaps(a.StartAt, a.EndAt, existing.StartAt, existing.EndAt) {
			return appointments.ErrSlotTaken
		}
	}

	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})

	return out, nil
}

func (r *appointmentsRepo) UpdateStatus(ctx context.Context, id string, status appointments.Status, updatedAt time.Time) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	a.Status = status
	a.UpdatedAt = updatedAt
	r.byID[id] = a
	return a, nil
}
