package order

import (
	"context"

	"agrihub/internal/domain"
)

// CreateInput holds everything needed to persist an order with its items in
// one transaction. TotalCents is computed by the repository.
type CreateInput struct {
	BuyerID         string
	SellerID        string
	ShippingAddress string
	Notes           string
	PaymentMethod   string
	Items           []ItemInput
}

type ItemInput struct {
	ProductID      *string
	Quantity       int
	UnitPriceCents int64
	Snapshot       domain.LineSnapshot
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
}
