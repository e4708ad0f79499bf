package product

import (
	"context"

	"agrihub/internal/domain"
)

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	CategoryID string
	SellerID   string
	Status     string
	Search     string
	Organic    *bool
	Limit      int
	Offset     int
}

type UpdateInput struct {
	Title             *string
	Description       *string
	PriceCents        *int64
	Unit              *string
	QuantityAvailable *int
	Images            []string
	Location          *string
	IsOrganic         *bool
	Status            *string
	CategoryID        *string
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
