package diagnosis

import (
	"context"
	"errors"
	"strings"

	"agrihub/internal/domain"
	diagrepo "agrihub/internal/repository/diagnosis"
)

type Service struct {
	repo diagrepo.Repository
}

func New(repo diagrepo.Repository) *Service {
	return &Service{repo: repo}
}

type RecordInput struct {
	ImageURL        string   `json:"imageUrl"`
	CropType        string   `json:"cropType"`
	Diagnosis       string   `json:"diagnosis"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

// Record stores an analysis result produced by the client-side model.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (*domain.Diagnosis, error) {
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, errors.New("imageUrl required")
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return nil, errors.New("confidence must be between 0 and 1")
	}
	recs := in.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return s.repo.Create(ctx, domain.Diagnosis{
		UserID:          userID,
		ImageURL:        in.ImageURL,
		CropType:        in.CropType,
		Diagnosis:       in.Diagnosis,
		Confidence:      in.Confidence,
		Recommendations: recs,
	})
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.Diagnosis, error) {
	return s.repo.ListByUser(ctx, userID)
}
