package catalog

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

type ListProductsInput struct {
	CategoryID string
	Search     string
	Sort       string
}

func (s *Service) ListProducts(ctx context.Context, in ListProductsInput) ([]Product, error) {
	f := ProductFilter{
		CategoryID: strings.TrimSpace(in.CategoryID),
		Search:     strings.TrimSpace(in.Search),
		Sort:       ParseSort(strings.TrimSpace(in.Sort)),
	}
	return s.repo.ListProducts(ctx, f)
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrInvalidInput
	}
	return s.repo.GetProduct(ctx, id)
}

// ListServices filtra por type. "all" es un sentinel del UI y equivale a sin filtro.
func (s *Service) ListServices(ctx context.Context, serviceType string) ([]CareService, error) {
	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "all" {
		serviceType = ""
	}
	return s.repo.ListServices(ctx, serviceType)
}

func (s *Service) GetService(ctx context.Context, id string) (CareService, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareService{}, ErrInvalidInput
	}
	return s.repo.GetService(ctx, id)
}
