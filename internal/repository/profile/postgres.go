package profile

import (
	"context"
	"errors"
	"log"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id::text, email, password_hash, full_name, phone, avatar_url, location, bio, role, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (email, password_hash, full_name, phone, location, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + profileColumns
	row := r.pool.QueryRow(ctx, q, p.Email, p.PasswordHash, p.FullName, p.Phone, p.Location, p.Role)
	out, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.getOne(ctx, q, email)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Profile, error) {
	const q = `
UPDATE profiles
SET full_name  = COALESCE($2, full_name),
    phone      = COALESCE($3, phone),
    avatar_url = COALESCE($4, avatar_url),
    location   = COALESCE($5, location),
    bio        = COALESCE($6, bio),
    updated_at = now()
WHERE id = $1
RETURNING ` + profileColumns
	row := r.pool.QueryRow(ctx, q, id, in.FullName, in.Phone, in.AvatarURL, in.Location, in.Bio)
	out, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	args := []interface{}{}
	if role != "" {
		q = `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY created_at DESC`
		args = append(args, role)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg interface{}) (*domain.Profile, error) {
	out, err := scanProfile(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.FullName,
		&p.Phone,
		&p.AvatarURL,
		&p.Location,
		&p.Bio,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
