package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrihub/internal/domain"
)

type stubItemsRepo struct {
	rows      map[string]domain.CartItem
	nextID    int
	insertErr error
	listErr   error
	updates   []string
}

func newStubItemsRepo() *stubItemsRepo {
	return &stubItemsRepo{rows: make(map[string]domain.CartItem)}
}

func (s *stubItemsRepo) ListByUser(_ context.Context, userID string) ([]domain.CartItem, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.CartItem
	for _, item := range s.rows {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubItemsRepo) Insert(_ context.Context, item domain.CartItem) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.nextID++
	item.ID = fmt.Sprintf("row-%d", s.nextID)
	s.rows[item.ID] = item
	return item.ID, nil
}

func (s *stubItemsRepo) UpdateQuantity(_ context.Context, userID, id string, quantity int) error {
	item, ok := s.rows[id]
	if !ok || item.UserID != userID {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	s.rows[id] = item
	s.updates = append(s.updates, id)
	return nil
}

func (s *stubItemsRepo) Delete(_ context.Context, userID, id string) error {
	item, ok := s.rows[id]
	if !ok || item.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *stubItemsRepo) DeleteAllByUser(_ context.Context, userID string) error {
	for id, item := range s.rows {
		if item.UserID == userID {
			delete(s.rows, id)
		}
	}
	return nil
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func strPtr(v string) *string {
	return &v
}

func activeProduct() *domain.Product {
	return &domain.Product{
		ID:         "p1",
		Title:      "Organic Tomatoes",
		Unit:       "kg",
		PriceCents: 150,
		Images:     []string{"tomatoes.jpg"},
		Location:   "Pune",
		IsOrganic:  true,
		Status:     domain.ProductStatusActive,
		Seller:     &domain.Profile{FullName: "Asha"},
	}
}

func TestAddSnapshotsCatalogProduct(t *testing.T) {
	items := newStubItemsRepo()
	svc := &Service{items: items, products: &stubProductRepo{product: activeProduct()}}

	id, cart, err := svc.Add(context.Background(), "u1", AddInput{ProductID: strPtr("p1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart))
	}
	if id != cart[0].ID {
		t.Fatalf("expected the inserted row id %q, got %q", cart[0].ID, id)
	}
	snap := cart[0].Snapshot
	if snap.Title != "Organic Tomatoes" || snap.Seller != "Asha" || snap.Image != "tomatoes.jpg" || !snap.IsOrganic {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if cart[0].Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", cart[0].Quantity)
	}
}

func TestAddBumpsExistingProductRow(t *testing.T) {
	items := newStubItemsRepo()
	svc := &Service{items: items, products: &stubProductRepo{product: activeProduct()}}

	if _, _, err := svc.Add(context.Background(), "u1", AddInput{ProductID: strPtr("p1"), Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	id, cart, err := svc.Add(context.Background(), "u1", AddInput{ProductID: strPtr("p1"), Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart) != 1 || cart[0].Quantity != 5 {
		t.Fatalf("expected one row with quantity 5, got %+v", cart)
	}
	if id != cart[0].ID {
		t.Fatalf("expected the bumped row id %q, got %q", cart[0].ID, id)
	}
	if len(items.updates) != 1 {
		t.Fatalf("expected an update, not another insert")
	}
}

func TestAddRejectsUnknownOrInactiveProduct(t *testing.T) {
	svc := &Service{items: newStubItemsRepo(), products: &stubProductRepo{err: domain.ErrNotFound}}
	if _, _, err := svc.Add(context.Background(), "u1", AddInput{ProductID: strPtr("ghost")}); err == nil || err.Error() != "product not found" {
		t.Fatalf("expected product not found, got %v", err)
	}

	sold := activeProduct()
	sold.Status = domain.ProductStatusSold
	svc = &Service{items: newStubItemsRepo(), products: &stubProductRepo{product: sold}}
	if _, _, err := svc.Add(context.Background(), "u1", AddInput{ProductID: strPtr("p1")}); err == nil || err.Error() != "product is not available" {
		t.Fatalf("expected availability error, got %v", err)
	}
}

func TestAddAdHocLineUsesCallerSnapshot(t *testing.T) {
	items := newStubItemsRepo()
	svc := &Service{items: items, products: &stubProductRepo{err: errors.New("must not be called")}}

	_, cart, err := svc.Add(context.Background(), "u1", AddInput{
		Quantity: 2,
		Snapshot: domain.LineSnapshot{Title: "Fresh Honey", PriceCents: 500},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 1 || cart[0].Snapshot.Title != "Fresh Honey" || cart[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestAddRejectsNegativePrice(t *testing.T) {
	svc := &Service{items: newStubItemsRepo(), products: &stubProductRepo{}}
	_, _, err := svc.Add(context.Background(), "u1", AddInput{Snapshot: domain.LineSnapshot{PriceCents: -1}})
	if err == nil || err.Error() != "price must not be negative" {
		t.Fatalf("expected price validation, got %v", err)
	}
}

func TestUpdateQuantityZeroDeletes(t *testing.T) {
	items := newStubItemsRepo()
	svc := &Service{items: items, products: &stubProductRepo{}}
	_, cart, err := svc.Add(context.Background(), "u1", AddInput{Snapshot: domain.LineSnapshot{Title: "x", PriceCents: 10}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.UpdateQuantity(context.Background(), "u1", cart[0].ID, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	left, _ := svc.List(context.Background(), "u1")
	if len(left) != 0 {
		t.Fatalf("expected row deleted, got %+v", left)
	}
}

func TestRowsAreScopedToUser(t *testing.T) {
	items := newStubItemsRepo()
	svc := &Service{items: items, products: &stubProductRepo{}}
	_, cart, err := svc.Add(context.Background(), "u1", AddInput{Snapshot: domain.LineSnapshot{Title: "x", PriceCents: 10}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(context.Background(), "intruder", cart[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
	if err := svc.Clear(context.Background(), "intruder"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	left, _ := svc.List(context.Background(), "u1")
	if len(left) != 1 {
		t.Fatalf("foreign clear must not touch other carts, got %+v", left)
	}
}
