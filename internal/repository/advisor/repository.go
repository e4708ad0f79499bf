package advisor

import (
	"context"

	"agrihub/internal/domain"
)

type UpsertInput struct {
	UserID          string
	Specialization  []string
	ExperienceYears int
	HourlyRateCents int64
	Available       bool
}

type Repository interface {
	Upsert(ctx context.Context, in UpsertInput) (*domain.Advisor, error)
	GetByID(ctx context.Context, id string) (*domain.Advisor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Advisor, error)
	List(ctx context.Context, availableOnly bool) ([]domain.Advisor, error)
	CreateConsultation(ctx context.Context, c domain.Consultation) (*domain.Consultation, error)
	ListConsultationsByFarmer(ctx context.Context, farmerID string) ([]domain.Consultation, error)
	ListConsultationsByAdvisor(ctx context.Context, advisorID string) ([]domain.Consultation, error)
	SetConsultationStatus(ctx context.Context, id, status string) error
}
