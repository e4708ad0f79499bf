package post

import (
	"context"
	"errors"
	"fmt"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `p.id::text, p.author_id::text, p.title, p.content, p.category, p.images, p.likes_count, p.comments_count, p.created_at, p.updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Post) (*domain.Post, error) {
	const q = `
INSERT INTO posts (author_id, title, content, category, images)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, author_id::text, title, content, category, images, likes_count, comments_count, created_at, updated_at
`
	images := p.Images
	if images == nil {
		images = []string{}
	}
	var out domain.Post
	if err := r.pool.QueryRow(ctx, q, p.AuthorID, p.Title, p.Content, p.Category, images).Scan(
		&out.ID, &out.AuthorID, &out.Title, &out.Content, &out.Category,
		&out.Images, &out.LikesCount, &out.CommentsCount, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const q = `
SELECT ` + postColumns + `, a.full_name, a.avatar_url
FROM posts p
JOIN profiles a ON a.id = p.author_id
WHERE p.id = $1
`
	var out domain.Post
	var author domain.Profile
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&out.ID, &out.AuthorID, &out.Title, &out.Content, &out.Category,
		&out.Images, &out.LikesCount, &out.CommentsCount, &out.CreatedAt, &out.UpdatedAt,
		&author.FullName, &author.AvatarURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	author.ID = out.AuthorID
	out.Author = &author
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context, category string, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + postColumns + `, a.full_name, a.avatar_url
FROM posts p
JOIN profiles a ON a.id = p.author_id
`
	args := []interface{}{}
	if category != "" {
		q += `WHERE p.category = $1
`
		args = append(args, category)
	}
	args = append(args, limit, offset)
	q += fmt.Sprintf("ORDER BY p.created_at DESC\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		var p domain.Post
		var author domain.Profile
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Category,
			&p.Images, &p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt,
			&author.FullName, &author.AvatarURL,
		); err != nil {
			return nil, err
		}
		author.ID = p.AuthorID
		p.Author = &author
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Like(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddComment(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO comments (post_id, author_id, content)
VALUES ($1, $2, $3)
RETURNING id::text, post_id::text, author_id::text, content, created_at
`
	var out domain.Comment
	if err := tx.QueryRow(ctx, q, c.PostID, c.AuthorID, c.Content).Scan(
		&out.ID, &out.PostID, &out.AuthorID, &out.Content, &out.CreatedAt,
	); err != nil {
		return nil, err
	}

	cmd, err := tx.Exec(ctx, `UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, c.PostID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	const q = `
SELECT c.id::text, c.post_id::text, c.author_id::text, c.content, c.created_at, a.full_name, a.avatar_url
FROM comments c
JOIN profiles a ON a.id = c.author_id
WHERE c.post_id = $1
ORDER BY c.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.Profile
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &author.FullName, &author.AvatarURL); err != nil {
			return nil, err
		}
		author.ID = c.AuthorID
		c.Author = &author
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
