package providers

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RatedProvider es un provider con su rating promedio calculado al momento
// de la lectura. Rating nil = sin reviews (distinto de rating cero).
type RatedProvider struct {
	Provider
	Services []ServiceSummary
	Rating   *float64
}

func (s *Service) List(ctx context.Context, providerType string) ([]RatedProvider, error) {
	providerType = strings.TrimSpace(providerType)
	if providerType == "all" {
		providerType = ""
	}

	items, err := s.repo.List(ctx, providerType)
	if err != nil {
		return nil, err
	}

	out := make([]RatedProvider, 0, len(items))
	for _, l := range items {
		out = append(out, RatedProvider{
			Provider: l.Provider,
			Services: l.Services,
			Rating:   meanRating(l.Ratings),
		})
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Provider{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func meanRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	m := float64(sum) / float64(len(ratings))
	return &m
}
