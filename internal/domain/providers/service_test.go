package providers_test

import (
	"context"
	"testing"

	"pet-care-marketplace/internal/domain/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	listings []providers.Listing
}

func (r *stubRepo) List(_ context.Context, providerType string) ([]providers.Listing, error) {
	if providerType == "" {
		return r.listings, nil
	}
	out := make([]providers.Listing, 0)
	for _, l := range r.listings {
		if l.Type == providerType {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (providers.Provider, error) {
	for _, l := range r.listings {
		if l.ID == id {
			return l.Provider, nil
		}
	}
	return providers.Provider{}, providers.ErrNotFound
}

func TestList_ComputesMeanRating(t *testing.T) {
	svc := providers.NewService(&stubRepo{listings: []providers.Listing{
		{Provider: providers.Provider{ID: "a", Type: "veterinary"}, Ratings: []int{3, 4, 5}},
		{Provider: providers.Provider{ID: "b", Type: "grooming"}, Ratings: []int{5}},
		{Provider: providers.Provider{ID: "c", Type: "training"}},
	}})

	out, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 3)

	byID := map[string]providers.RatedProvider{}
	for _, p := range out {
		byID[p.ID] = p
	}

	require.NotNil(t, byID["a"].Rating)
	assert.InDelta(t, 4.0, *byID["a"].Rating, 1e-9)

	require.NotNil(t, byID["b"].Rating)
	assert.InDelta(t, 5.0, *byID["b"].Rating, 1e-9)

	// sin reviews: nil, no cero
	assert.Nil(t, byID["c"].Rating)
}

func TestList_TypeFilter(t *testing.T) {
	svc := providers.NewService(&stubRepo{listings: []providers.Listing{
		{Provider: providers.Provider{ID: "a", Type: "veterinary"}},
		{Provider: providers.Provider{ID: "b", Type: "grooming"}},
	}})

	out, err := svc.List(context.Background(), "veterinary")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)

	// "all" equivale a sin filtro
	out, err = svc.List(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
