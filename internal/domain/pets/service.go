package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Type         string
	Breed        string
	DateOfBirth  *time.Time
	Weight       *decimal.Decimal
	DietaryNotes string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Type) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Weight != nil && !in.Weight.IsPositive() {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Type:         strings.TrimSpace(in.Type),
		Breed:        strings.TrimSpace(in.Breed),
		DateOfBirth:  in.DateOfBirth,
		Weight:       in.Weight,
		DietaryNotes: strings.TrimSpace(in.DietaryNotes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Pet, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete borra una mascota del usuario. Si la mascota existe pero pertenece a
// otro usuario, responde not found (no filtramos existencia ajena).
func (s *Service) Delete(ctx context.Context, userID, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if p.UserID != userID {
		return ErrNotFound
	}

	return s.repo.Delete(ctx, petID)
}
