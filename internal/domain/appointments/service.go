package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-marketplace/internal/domain/catalog"
	"pet-care-marketplace/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("time slot is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CareServiceSource resuelve servicios del catálogo (lo implementa catalog.Service).
type CareServiceSource interface {
	GetService(ctx context.Context, id string) (catalog.CareService, error)
}

// PetSource resuelve mascotas (lo implementa pets.Service).
type PetSource interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type Service struct {
	repo     Repository
	services CareServiceSource
	pets     PetSource
	now      func() time.Time
}

func NewService(repo Repository, services CareServiceSource, pets PetSource) *Service {
	return &Service{
		repo:     repo,
		services: services,
		pets:     pets,
		now:      time.Now,
	}
}

type BookInput struct {
	ServiceID  string
	PetID      string
	ProviderID string
	StartAt    time.Time
	Notes      string
}

// Book agenda un turno. La duración del servicio define el intervalo
// [StartAt, EndAt) del conflicto: dos turnos del mismo provider cuyos
// intervalos se solapan no pueden estar scheduled a la vez.
func (s *Service) Book(ctx context.Context, userID string, in BookInput) (Appointment, error) {
	userID = strings.TrimSpace(userID)
	serviceID := strings.TrimSpace(in.ServiceID)
	petID := strings.TrimSpace(in.PetID)
	providerID := strings.TrimSpace(in.ProviderID)

	if userID == "" || serviceID == "" || petID == "" || providerID == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.StartAt.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	cs, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	if cs.ProviderID != providerID {
		// el servicio pertenece a otro provider: payload inconsistente
		return Appointment{}, ErrInvalidInput
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if p.UserID != userID {
		return Appointment{}, ErrNotFound
	}

	now := s.now()
	a := Appointment{
		ID:         uuid.NewString(),
		UserID:     userID,
		ServiceID:  serviceID,
		PetID:      petID,
		ProviderID: providerID,
		StartAt:    in.StartAt,
		EndAt:      in.StartAt.Add(time.Duration(cs.DurationMin) * time.Minute),
		Status:     StatusScheduled,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus aplica la máquina de estados:
// scheduled -> completed | cancelled; completed y cancelled son terminales.
// Repetir el estado actual es idempotente; cualquier otra transición se
// rechaza con ErrInvalidTransition. Cancelar libera el slot.
func (s *Service) UpdateStatus(ctx context.Context, userID, id string, status Status) (Appointment, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if a.UserID != userID {
		return Appointment{}, ErrNotFound
	}

	// Idempotente
	if a.Status == status {
		return a, nil
	}
	if a.Status != StatusScheduled {
		return Appointment{}, ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, status, s.now())
}
