package notification

import (
	"context"

	"agrihub/internal/domain"
	notifrepo "agrihub/internal/repository/notification"
)

// Service persists notifications and serves them back to their owner. It
// satisfies the Notifier interfaces the order and advisory services declare.
type Service struct {
	repo notifrepo.Repository
}

func New(repo notifrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Notify(ctx context.Context, n domain.Notification) error {
	_, err := s.repo.Insert(ctx, n)
	return err
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
