package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type categorySeed struct {
	Name string
	Slug string
	Icon string
}

type productSeed struct {
	Title       string
	Description string
	PriceCents  int64
	Unit        string
	Quantity    int
	Category    string
	Location    string
	IsOrganic   bool
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Vegetables", Slug: "vegetables", Icon: "carrot"},
		{Name: "Fruits", Slug: "fruits", Icon: "apple"},
		{Name: "Grains", Slug: "grains", Icon: "wheat"},
		{Name: "Dairy", Slug: "dairy", Icon: "milk"},
		{Name: "Honey", Slug: "honey", Icon: "hexagon"},
	}
	for _, c := range categories {
		if err := ensureCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("ensure category %s: %w", c.Slug, err)
		}
	}

	farmerID, err := ensureProfile(ctx, pool, "farmer@agrihub.test", "Ferma2024!", "Demo Farm", "farmer")
	if err != nil {
		return fmt.Errorf("ensure farmer: %w", err)
	}
	if _, err := ensureProfile(ctx, pool, "admin@agrihub.test", "Admin2024!", "Platform Admin", "admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Title:       "Heirloom Tomatoes",
			Description: "Vine-ripened, picked the same morning",
			PriceCents:  350,
			Unit:        "kg",
			Quantity:    120,
			Category:    "vegetables",
			Location:    "Green Valley",
			IsOrganic:   true,
		},
		{
			Title:       "Raw Wildflower Honey",
			Description: "Unfiltered honey from hillside hives",
			PriceCents:  1200,
			Unit:        "jar",
			Quantity:    40,
			Category:    "honey",
			Location:    "Green Valley",
			IsOrganic:   true,
		},
		{
			Title:       "Stone-Ground Cornmeal",
			Description: "Coarse grind from this season's maize",
			PriceCents:  540,
			Unit:        "kg",
			Quantity:    200,
			Category:    "grains",
			Location:    "Green Valley",
		},
	}
	for _, p := range products {
		if err := ensureProduct(ctx, pool, farmerID, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Title, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (name, slug, icon)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, icon = EXCLUDED.icon
`
	_, err := pool.Exec(ctx, q, c.Name, c.Slug, c.Icon)
	return err
}

func ensureProfile(ctx context.Context, pool *pgxpool.Pool, email, password, fullName, role string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	const q = `
INSERT INTO profiles (email, password_hash, full_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hash), fullName, role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, sellerID string, p productSeed) error {
	const q = `
INSERT INTO products (seller_id, category_id, title, description, price_cents, unit, quantity_available, location, is_organic, status)
SELECT $1, c.id, $2, $3, $4, $5, $6, $7, $8, 'active'
FROM categories c
WHERE c.slug = $9
  AND NOT EXISTS (SELECT 1 FROM products WHERE seller_id = $1 AND title = $2)
`
	_, err := pool.Exec(ctx, q, sellerID, p.Title, p.Description, p.PriceCents, p.Unit, p.Quantity, p.Location, p.IsOrganic, p.Category)
	return err
}
