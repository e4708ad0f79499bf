package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"agrihub/internal/domain"
	cartitemrepo "agrihub/internal/repository/cartitem"
	orderrepo "agrihub/internal/repository/order"
	productrepo "agrihub/internal/repository/product"
)

// Notifier receives synthesized notifications for order events. Failures
// must not fail the order; the service logs and moves on.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

type Service struct {
	orders   orderrepo.Repository
	items    cartitemrepo.Repository
	products productRepo
	notifier Notifier
	logger   *log.Logger
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(orders orderrepo.Repository, items cartitemrepo.Repository, products productrepo.Repository, notifier Notifier, logger *log.Logger) *Service {
	return &Service{orders: orders, items: items, products: products, notifier: notifier, logger: logger}
}

type CheckoutInput struct {
	ShippingAddress string `json:"shippingAddress"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"paymentMethod"`
}

// Checkout turns the buyer's cart rows into orders, one per seller, then
// clears the cart. Lines without a catalog product have no seller to route
// to and are skipped with a log line.
func (s *Service) Checkout(ctx context.Context, buyerID string, in CheckoutInput) ([]domain.Order, error) {
	lines, err := s.items.ListByUser(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("cart is empty")
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = "cash_on_delivery"
	}

	// Group cart lines by the seller of their catalog product.
	bySeller := make(map[string][]orderrepo.ItemInput)
	var sellerOrder []string
	var ordered []string
	for _, line := range lines {
		if line.ProductID == nil {
			s.logger.Printf("checkout: skipping ad hoc line %s (no seller)", line.ID)
			continue
		}
		product, err := s.products.GetByID(ctx, *line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Printf("checkout: skipping line %s, product gone", line.ID)
				continue
			}
			return nil, err
		}
		if _, ok := bySeller[product.SellerID]; !ok {
			sellerOrder = append(sellerOrder, product.SellerID)
		}
		bySeller[product.SellerID] = append(bySeller[product.SellerID], orderrepo.ItemInput{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.Snapshot.PriceCents,
			Snapshot:       line.Snapshot,
		})
		ordered = append(ordered, line.ID)
	}
	if len(bySeller) == 0 {
		return nil, errors.New("no orderable items in cart")
	}

	var orders []domain.Order
	for _, sellerID := range sellerOrder {
		order, err := s.orders.Create(ctx, orderrepo.CreateInput{
			BuyerID:         buyerID,
			SellerID:        sellerID,
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			Notes:           strings.TrimSpace(in.Notes),
			PaymentMethod:   payment,
			Items:           bySeller[sellerID],
		})
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)

		s.notify(ctx, domain.Notification{
			UserID:   sellerID,
			Kind:     domain.NotificationOrderPlaced,
			Title:    "New order received",
			Body:     fmt.Sprintf("Order for %d item(s), total %d", len(order.Items), order.TotalCents),
			EntityID: &order.ID,
		})
	}

	// Remove only the lines that became order items; skipped lines stay in
	// the cart.
	if len(ordered) == len(lines) {
		if err := s.items.DeleteAllByUser(ctx, buyerID); err != nil {
			s.logger.Printf("checkout: clear cart for %s: %v", buyerID, err)
		}
	} else {
		for _, id := range ordered {
			if err := s.items.Delete(ctx, buyerID, id); err != nil {
				s.logger.Printf("checkout: remove line %s for %s: %v", id, buyerID, err)
			}
		}
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.Profile, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actor.ID && order.SellerID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID)
}

func (s *Service) ListForSeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	return s.orders.ListBySeller(ctx, sellerID)
}

// SetStatus moves an order along its lifecycle. Only the seller may, and
// only along allowed transitions.
func (s *Service) SetStatus(ctx context.Context, sellerID, id, status string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	if !transitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, status)
	}
	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Notification{
		UserID:   order.BuyerID,
		Kind:     domain.NotificationOrderStatusChanged,
		Title:    "Order " + status,
		Body:     fmt.Sprintf("Your order is now %s", status),
		EntityID: &order.ID,
	})

	return s.orders.GetByID(ctx, id)
}

func (s *Service) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Printf("notify %s: %v", n.Kind, err)
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range domain.NextOrderStatuses[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
