package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByUser(ctx context.Context, userID string) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}
