package cartitem

import (
	"context"
	"errors"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT id::text, user_id::text, product_id::text, snapshot, quantity, created_at
FROM cart_items
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var productID *string
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&productID,
			&item.Snapshot,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.ProductID = productID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) Insert(ctx context.Context, item domain.CartItem) (string, error) {
	if item.Quantity < 1 {
		return "", errors.New("quantity must be at least 1")
	}
	const q = `
INSERT INTO cart_items (user_id, product_id, snapshot, quantity)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(ctx, q, item.UserID, item.ProductID, item.Snapshot, item.Quantity).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, id string, quantity int) error {
	if quantity < 1 {
		return r.Delete(ctx, userID, id)
	}
	const q = `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND user_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
