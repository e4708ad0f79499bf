package product

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"agrihub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `p.id::text, p.seller_id::text, p.category_id::text, p.title, p.description, p.price_cents, p.unit, p.quantity_available, p.images, p.location, p.is_organic, p.status, p.created_at, p.updated_at`

const productColumnsBare = `id::text, seller_id::text, category_id::text, title, description, price_cents, unit, quantity_available, images, location, is_organic, status, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (seller_id, category_id, title, description, price_cents, unit, quantity_available, images, location, is_organic, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + productColumnsBare
	images := p.Images
	if images == nil {
		images = []string{}
	}
	row := r.pool.QueryRow(ctx, q,
		p.SellerID, p.CategoryID, p.Title, p.Description, p.PriceCents,
		p.Unit, p.QuantityAvailable, images, p.Location, p.IsOrganic, p.Status,
	)
	return scanProduct(row)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `,
       s.full_name, s.location,
       c.name, c.slug
FROM products p
JOIN profiles s ON s.id = p.seller_id
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	var p domain.Product
	var categoryID *string
	var sellerName, sellerLocation string
	var categoryName, categorySlug *string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.SellerID, &categoryID, &p.Title, &p.Description,
		&p.PriceCents, &p.Unit, &p.QuantityAvailable, &p.Images,
		&p.Location, &p.IsOrganic, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&sellerName, &sellerLocation,
		&categoryName, &categorySlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.CategoryID = categoryID
	p.Seller = &domain.Profile{ID: p.SellerID, FullName: sellerName, Location: sellerLocation}
	if categoryID != nil && categoryName != nil {
		p.Category = &domain.Category{ID: *categoryID, Name: *categoryName}
		if categorySlug != nil {
			p.Category.Slug = *categorySlug
		}
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products p WHERE 1=1`)
	var args []interface{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}
	if f.Status != "" {
		add("p.status = $%d", f.Status)
	}
	if f.CategoryID != "" {
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.SellerID != "" {
		add("p.seller_id = $%d", f.SellerID)
	}
	if f.Organic != nil {
		add("p.is_organic = $%d", *f.Organic)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		fmt.Fprintf(&sb, " AND (p.title ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}
	sb.WriteString(" ORDER BY p.created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
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

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	const q = `
UPDATE products
SET title              = COALESCE($2, title),
    description        = COALESCE($3, description),
    price_cents        = COALESCE($4, price_cents),
    unit               = COALESCE($5, unit),
    quantity_available = COALESCE($6, quantity_available),
    images             = COALESCE($7, images),
    location           = COALESCE($8, location),
    is_organic         = COALESCE($9, is_organic),
    status             = COALESCE($10, status),
    category_id        = COALESCE($11, category_id),
    updated_at         = now()
WHERE id = $1
RETURNING ` + productColumnsBare
	var images interface{}
	if in.Images != nil {
		images = in.Images
	}
	row := r.pool.QueryRow(ctx, q, id,
		in.Title, in.Description, in.PriceCents, in.Unit, in.QuantityAvailable,
		images, in.Location, in.IsOrganic, in.Status, in.CategoryID,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var categoryID *string
	if err := row.Scan(
		&p.ID, &p.SellerID, &categoryID, &p.Title, &p.Description,
		&p.PriceCents, &p.Unit, &p.QuantityAvailable, &p.Images,
		&p.Location, &p.IsOrganic, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.CategoryID = categoryID
	return &p, nil
}
