package order

import (
	"context"
	"errors"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id::text, buyer_id::text, seller_id::text, status, total_cents, shipping_address, notes, payment_method, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, errors.New("order needs at least one item")
	}

	var total int64
	for _, it := range in.Items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (buyer_id, seller_id, status, total_cents, shipping_address, notes, payment_method)
VALUES ($1, $2, 'pending', $3, $4, $5, $6)
RETURNING ` + orderColumns
	var order domain.Order
	if err := tx.QueryRow(ctx, insertOrder,
		in.BuyerID, in.SellerID, total, in.ShippingAddress, in.Notes, in.PaymentMethod,
	).Scan(
		&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalCents,
		&order.ShippingAddress, &order.Notes, &order.PaymentMethod,
		&order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents, snapshot)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	for _, it := range in.Items {
		var itemID string
		if err := tx.QueryRow(ctx, insertItem, order.ID, it.ProductID, it.Quantity, it.UnitPriceCents, it.Snapshot).Scan(&itemID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:             itemID,
			OrderID:        order.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Snapshot:       it.Snapshot,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var order domain.Order
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalCents,
		&order.ShippingAddress, &order.Notes, &order.PaymentMethod,
		&order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQ = `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price_cents, snapshot
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, itemsQ, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.OrderID, &productID, &it.Quantity, &it.UnitPriceCents, &it.Snapshot); err != nil {
			return nil, err
		}
		it.ProductID = productID
		order.Items = append(order.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`, buyerID)
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q, arg string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalCents,
			&order.ShippingAddress, &order.Notes, &order.PaymentMethod,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
