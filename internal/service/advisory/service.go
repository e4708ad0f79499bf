package advisory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"agrihub/internal/domain"
	advisorrepo "agrihub/internal/repository/advisor"
)

// Notifier receives synthesized notifications for booking events.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

type Service struct {
	repo     advisorrepo.Repository
	notifier Notifier
	logger   *log.Logger
}

func New(repo advisorrepo.Repository, notifier Notifier, logger *log.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

type UpsertInput struct {
	Specialization  []string `json:"specialization"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRateCents int64    `json:"hourlyRateCents"`
	Available       bool     `json:"available"`
}

// UpsertProfile creates or updates the caller's advisor entry.
func (s *Service) UpsertProfile(ctx context.Context, userID string, in UpsertInput) (*domain.Advisor, error) {
	if in.ExperienceYears < 0 || in.HourlyRateCents < 0 {
		return nil, errors.New("experience and rate must not be negative")
	}
	return s.repo.Upsert(ctx, advisorrepo.UpsertInput{
		UserID:          userID,
		Specialization:  in.Specialization,
		ExperienceYears: in.ExperienceYears,
		HourlyRateCents: in.HourlyRateCents,
		Available:       in.Available,
	})
}

func (s *Service) List(ctx context.Context, availableOnly bool) ([]domain.Advisor, error) {
	return s.repo.List(ctx, availableOnly)
}

type BookInput struct {
	AdvisorID       string     `json:"advisorId"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           string     `json:"notes"`
}

// Book records a consultation request against an advisor and notifies them.
func (s *Service) Book(ctx context.Context, farmerID string, in BookInput) (*domain.Consultation, error) {
	if in.AdvisorID == "" {
		return nil, errors.New("advisorId required")
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = 30
	}
	if in.ScheduledAt != nil && in.ScheduledAt.Before(time.Now()) {
		return nil, errors.New("scheduledAt must be in the future")
	}

	advisor, err := s.repo.GetByID(ctx, in.AdvisorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("advisor not found")
		}
		return nil, err
	}
	if !advisor.Available {
		return nil, errors.New("advisor is not accepting consultations")
	}

	c, err := s.repo.CreateConsultation(ctx, domain.Consultation{
		AdvisorID:       in.AdvisorID,
		FarmerID:        farmerID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: duration,
		Status:          domain.ConsultationStatusRequested,
		Notes:           in.Notes,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, domain.Notification{
			UserID:   advisor.UserID,
			Kind:     domain.NotificationConsultationBooked,
			Title:    "New consultation request",
			Body:     fmt.Sprintf("A %d-minute consultation was requested", duration),
			EntityID: &c.ID,
		})
		if err != nil {
			s.logger.Printf("notify consultation: %v", err)
		}
	}
	return c, nil
}

func (s *Service) ListForFarmer(ctx context.Context, farmerID string) ([]domain.Consultation, error) {
	return s.repo.ListConsultationsByFarmer(ctx, farmerID)
}

func (s *Service) ListForAdvisor(ctx context.Context, userID string) ([]domain.Consultation, error) {
	advisor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListConsultationsByAdvisor(ctx, advisor.ID)
}
