package diagnosis

import (
	"context"

	"agrihub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, d domain.Diagnosis) (*domain.Diagnosis, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Diagnosis, error)
}
