package product

import (
	"context"
	"errors"
	"strings"

	"agrihub/internal/domain"
	productrepo "agrihub/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	PriceCents        int64    `json:"priceCents"`
	Unit              string   `json:"unit"`
	QuantityAvailable int      `json:"quantityAvailable"`
	Images            []string `json:"images"`
	Location          string   `json:"location"`
	IsOrganic         bool     `json:"isOrganic"`
	Status            string   `json:"status"`
	CategoryID        *string  `json:"categoryId"`
}

// Create validates and persists a listing owned by sellerID.
func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title required")
	}
	if in.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "unit"
	}
	status := in.Status
	if status == "" {
		status = domain.ProductStatusActive
	}
	switch status {
	case domain.ProductStatusActive, domain.ProductStatusSold, domain.ProductStatusDraft:
	default:
		return nil, errors.New("invalid status")
	}

	return s.repo.Create(ctx, domain.Product{
		SellerID:          sellerID,
		CategoryID:        in.CategoryID,
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		PriceCents:        in.PriceCents,
		Unit:              unit,
		QuantityAvailable: in.QuantityAvailable,
		Images:            in.Images,
		Location:          strings.TrimSpace(in.Location),
		IsOrganic:         in.IsOrganic,
		Status:            status,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f productrepo.Filter) ([]domain.Product, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 24
	}
	return s.repo.List(ctx, f)
}

// Update applies a partial edit; only the owning seller may edit a listing.
func (s *Service) Update(ctx context.Context, sellerID, id string, in productrepo.UpdateInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}
	if in.Status != nil {
		switch *in.Status {
		case domain.ProductStatusActive, domain.ProductStatusSold, domain.ProductStatusDraft:
		default:
			return nil, errors.New("invalid status")
		}
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a listing; only the owning seller (or an admin) may.
func (s *Service) Delete(ctx context.Context, actor *domain.Profile, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
