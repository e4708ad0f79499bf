package diagnosis

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

func (r *postgresRepo) Create(ctx context.Context, d domain.Diagnosis) (*domain.Diagnosis, error) {
	const q = `
INSERT INTO diagnoses (user_id, image_url, crop_type, diagnosis, confidence, recommendations)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, user_id::text, image_url, crop_type, diagnosis, confidence, recommendations, created_at
`
	recs := d.Recommendations
	if recs == nil {
		recs = []string{}
	}
	var out domain.Diagnosis
	if err := r.pool.QueryRow(ctx, q, d.UserID, d.ImageURL, d.CropType, d.Diagnosis, d.Confidence, recs).Scan(
		&out.ID, &out.UserID, &out.ImageURL, &out.CropType, &out.Diagnosis,
		&out.Confidence, &out.Recommendations, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Diagnosis, error) {
	const q = `
SELECT id::text, user_id::text, image_url, crop_type, diagnosis, confidence, recommendations, created_at
FROM diagnoses
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Diagnosis
	for rows.Next() {
		var d domain.Diagnosis
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ImageURL, &d.CropType, &d.Diagnosis,
			&d.Confidence, &d.Recommendations, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
