package post

import (
	"context"

	"agrihub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Post) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, category string, limit, offset int) ([]domain.Post, error)
	Like(ctx context.Context, id string) error
	AddComment(ctx context.Context, c domain.Comment) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
}
