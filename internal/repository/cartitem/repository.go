package cartitem

import (
	"context"

	"agrihub/internal/domain"
)

// Repository persists per-user cart rows. The method set matches what the
// session cart store consumes as its remote side.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Insert(ctx context.Context, item domain.CartItem) (string, error)
	UpdateQuantity(ctx context.Context, userID, id string, quantity int) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}
