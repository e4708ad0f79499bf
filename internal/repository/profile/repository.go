package profile

import (
	"context"

	"agrihub/internal/domain"
)

type UpdateInput struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
	Location  *string
	Bio       *string
}

type Repository interface {
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Profile, error)
	List(ctx context.Context, role domain.Role) ([]domain.Profile, error)
}
