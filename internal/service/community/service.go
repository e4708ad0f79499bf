package community

import (
	"context"
	"errors"
	"strings"

	"agrihub/internal/domain"
	postrepo "agrihub/internal/repository/post"
)

type Service struct {
	repo postrepo.Repository
}

func New(repo postrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreatePostInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Images   []string `json:"images"`
}

func (s *Service) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		return nil, errors.New("title required")
	}
	if content == "" {
		return nil, errors.New("content required")
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return s.repo.Create(ctx, domain.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		Category: strings.TrimSpace(in.Category),
		Images:   images,
	})
}

func (s *Service) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context, category string, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, category, limit, offset)
}

// LikePost bumps the counter. Likes are not tracked per user.
func (s *Service) LikePost(ctx context.Context, id string) error {
	return s.repo.Like(ctx, id)
}

func (s *Service) AddComment(ctx context.Context, authorID, postID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content required")
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.AddComment(ctx, domain.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	})
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	return s.repo.ListComments(ctx, postID)
}
