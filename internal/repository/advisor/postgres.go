package advisor

import (
	"context"
	"errors"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const advisorColumns = `a.id::text, a.user_id::text, a.specialization, a.experience_years, a.hourly_rate_cents, a.available, a.rating, a.total_consultations, a.created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) (*domain.Advisor, error) {
	const q = `
INSERT INTO advisors (user_id, specialization, experience_years, hourly_rate_cents, available)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE
SET specialization    = EXCLUDED.specialization,
    experience_years  = EXCLUDED.experience_years,
    hourly_rate_cents = EXCLUDED.hourly_rate_cents,
    available         = EXCLUDED.available
RETURNING id::text, user_id::text, specialization, experience_years, hourly_rate_cents, available, rating, total_consultations, created_at
`
	spec := in.Specialization
	if spec == nil {
		spec = []string{}
	}
	var a domain.Advisor
	if err := r.pool.QueryRow(ctx, q, in.UserID, spec, in.ExperienceYears, in.HourlyRateCents, in.Available).Scan(
		&a.ID, &a.UserID, &a.Specialization, &a.ExperienceYears, &a.HourlyRateCents,
		&a.Available, &a.Rating, &a.TotalConsultations, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Advisor, error) {
	const q = `
SELECT ` + advisorColumns + `
FROM advisors a
WHERE a.id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID string) (*domain.Advisor, error) {
	const q = `
SELECT ` + advisorColumns + `
FROM advisors a
WHERE a.user_id = $1
`
	return r.getOne(ctx, q, userID)
}

func (r *postgresRepo) getOne(ctx context.Context, q, arg string) (*domain.Advisor, error) {
	var a domain.Advisor
	if err := r.pool.QueryRow(ctx, q, arg).Scan(
		&a.ID, &a.UserID, &a.Specialization, &a.ExperienceYears, &a.HourlyRateCents,
		&a.Available, &a.Rating, &a.TotalConsultations, &a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) List(ctx context.Context, availableOnly bool) ([]domain.Advisor, error) {
	q := `
SELECT ` + advisorColumns + `, p.full_name, p.avatar_url, p.location, p.bio
FROM advisors a
JOIN profiles p ON p.id = a.user_id
`
	if availableOnly {
		q += `WHERE a.available
`
	}
	q += `ORDER BY a.rating DESC, a.total_consultations DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Advisor
	for rows.Next() {
		var a domain.Advisor
		var p domain.Profile
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Specialization, &a.ExperienceYears, &a.HourlyRateCents,
			&a.Available, &a.Rating, &a.TotalConsultations, &a.CreatedAt,
			&p.FullName, &p.AvatarURL, &p.Location, &p.Bio,
		); err != nil {
			return nil, err
		}
		p.ID = a.UserID
		a.Profile = &p
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) CreateConsultation(ctx context.Context, c domain.Consultation) (*domain.Consultation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO consultations (advisor_id, farmer_id, scheduled_at, duration_minutes, status, notes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, advisor_id::text, farmer_id::text, scheduled_at, duration_minutes, status, notes, created_at
`
	var out domain.Consultation
	if err := tx.QueryRow(ctx, q, c.AdvisorID, c.FarmerID, c.ScheduledAt, c.DurationMinutes, c.Status, c.Notes).Scan(
		&out.ID, &out.AdvisorID, &out.FarmerID, &out.ScheduledAt,
		&out.DurationMinutes, &out.Status, &out.Notes, &out.CreatedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
UPDATE advisors SET total_consultations = total_consultations + 1 WHERE id = $1
`, c.AdvisorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListConsultationsByFarmer(ctx context.Context, farmerID string) ([]domain.Consultation, error) {
	return r.listConsultations(ctx, `farmer_id`, farmerID)
}

func (r *postgresRepo) ListConsultationsByAdvisor(ctx context.Context, advisorID string) ([]domain.Consultation, error) {
	return r.listConsultations(ctx, `advisor_id`, advisorID)
}

func (r *postgresRepo) SetConsultationStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE consultations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) listConsultations(ctx context.Context, column, id string) ([]domain.Consultation, error) {
	q := `
SELECT id::text, advisor_id::text, farmer_id::text, scheduled_at, duration_minutes, status, notes, created_at
FROM consultations
WHERE ` + column + ` = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Consultation
	for rows.Next() {
		var c domain.Consultation
		if err := rows.Scan(
			&c.ID, &c.AdvisorID, &c.FarmerID, &c.ScheduledAt,
			&c.DurationMinutes, &c.Status, &c.Notes, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
