package notification

import (
	"context"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Insert(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	const q = `
INSERT INTO notifications (user_id, kind, title, body, entity_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, user_id::text, kind, title, body, entity_id::text, read, created_at
`
	var out domain.Notification
	var entityID *string
	if err := r.pool.QueryRow(ctx, q, n.UserID, n.Kind, n.Title, n.Body, n.EntityID).Scan(
		&out.ID, &out.UserID, &out.Kind, &out.Title, &out.Body, &entityID, &out.Read, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.EntityID = entityID
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	q := `
SELECT id::text, user_id::text, kind, title, body, entity_id::text, read, created_at
FROM notifications
WHERE user_id = $1
`
	if unreadOnly {
		q += `AND NOT read
`
	}
	q += `ORDER BY created_at DESC
LIMIT 100`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var entityID *string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &entityID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.EntityID = entityID
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) MarkRead(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`, userID)
	return err
}
