// Package cart is the server face of the remote cart rows: the HTTP API the
// session store (and any other client) syncs against.
package cart

import (
	"context"
	"errors"

	"agrihub/internal/domain"
	cartitemrepo "agrihub/internal/repository/cartitem"
	productrepo "agrihub/internal/repository/product"
)

type Service struct {
	items    cartitemrepo.Repository
	products productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(items cartitemrepo.Repository, products productrepo.Repository) *Service {
	return &Service{items: items, products: products}
}

// AddInput describes a line to insert. When ProductID is set the snapshot is
// taken from the catalog; otherwise the caller-supplied snapshot is used.
type AddInput struct {
	ProductID *string             `json:"productId,omitempty"`
	Quantity  int                 `json:"quantity"`
	Snapshot  domain.LineSnapshot `json:"snapshot"`
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return s.items.ListByUser(ctx, userID)
}

// Add inserts a row, or bumps the quantity of an existing row for the same
// product. Returns the id of the row that was created or bumped, plus the
// full cart, so callers never have to guess which row the write touched.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (string, []domain.CartItem, error) {
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	snapshot := in.Snapshot
	if in.ProductID != nil {
		product, err := s.products.GetByID(ctx, *in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", nil, errors.New("product not found")
			}
			return "", nil, err
		}
		if product.Status != domain.ProductStatusActive {
			return "", nil, errors.New("product is not available")
		}
		snapshot = snapshotFromProduct(*product)

		existing, err := s.items.ListByUser(ctx, userID)
		if err != nil {
			return "", nil, err
		}
		for _, line := range existing {
			if line.ProductID != nil && *line.ProductID == *in.ProductID {
				if err := s.items.UpdateQuantity(ctx, userID, line.ID, line.Quantity+in.Quantity); err != nil {
					return "", nil, err
				}
				items, err := s.items.ListByUser(ctx, userID)
				return line.ID, items, err
			}
		}
	}

	if snapshot.PriceCents < 0 {
		return "", nil, errors.New("price must not be negative")
	}
	id, err := s.items.Insert(ctx, domain.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Snapshot:  snapshot,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return "", nil, err
	}
	items, err := s.items.ListByUser(ctx, userID)
	return id, items, err
}

// UpdateQuantity sets a row's quantity; zero or below deletes the row.
func (s *Service) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	if quantity <= 0 {
		return s.items.Delete(ctx, userID, id)
	}
	return s.items.UpdateQuantity(ctx, userID, id, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, id string) error {
	return s.items.Delete(ctx, userID, id)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.items.DeleteAllByUser(ctx, userID)
}

func snapshotFromProduct(p domain.Product) domain.LineSnapshot {
	snap := domain.LineSnapshot{
		Title:      p.Title,
		Unit:       p.Unit,
		Location:   p.Location,
		PriceCents: p.PriceCents,
		IsOrganic:  p.IsOrganic,
	}
	if p.Seller != nil {
		snap.Seller = p.Seller.FullName
	}
	if len(p.Images) > 0 {
		snap.Image = p.Images[0]
	}
	return snap
}
