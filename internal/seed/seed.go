package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const demoShopper = "demo-shopper"

type lineSeed struct {
	ProductID string
	Title     string
	Image     string
	Unit      string
	Price     float64
	Qty       int
}

// Apply inserts demo data for manual testing: a shopper with a few cart
// lines and a saved delivery address. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	lines := []lineSeed{
		{
			ProductID: "demo-rice",
			Title:     "Basmati Rice",
			Image:     "https://example.com/images/basmati-rice.jpg",
			Unit:      "1 kg",
			Price:     120,
			Qty:       1,
		},
		{
			ProductID: "demo-milk",
			Title:     "Toned Milk",
			Image:     "https://example.com/images/toned-milk.jpg",
			Unit:      "500 ml",
			Price:     30,
			Qty:       2,
		},
		{
			ProductID: "demo-atta",
			Title:     "Whole Wheat Atta",
			Image:     "https://example.com/images/wheat-atta.jpg",
			Unit:      "5 kg",
			Price:     240,
			Qty:       1,
		},
	}

	for _, line := range lines {
		if err := upsertCartLine(ctx, pool, demoShopper, line); err != nil {
			return fmt.Errorf("upsert cart line %s: %w", line.ProductID, err)
		}
	}

	if err := upsertAddress(ctx, pool, demoShopper); err != nil {
		return fmt.Errorf("upsert address: %w", err)
	}

	return nil
}

func upsertCartLine(ctx context.Context, pool *pgxpool.Pool, shopperID string, line lineSeed) error {
	const q = `
INSERT INTO cart_lines (shopper_id, product_id, title, image, unit, price, qty)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (shopper_id, product_id) DO UPDATE
SET title = EXCLUDED.title,
    image = EXCLUDED.image,
    unit = EXCLUDED.unit,
    price = EXCLUDED.price,
    qty = EXCLUDED.qty
`
	_, err := pool.Exec(ctx, q, shopperID, line.ProductID, line.Title, line.Image, line.Unit, line.Price, line.Qty)
	return err
}

func upsertAddress(ctx context.Context, pool *pgxpool.Pool, shopperID string) error {
	const q = `
INSERT INTO saved_addresses (shopper_id, name, line1, city, phone, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (shopper_id) DO UPDATE
SET name = EXCLUDED.name,
    line1 = EXCLUDED.line1,
    city = EXCLUDED.city,
    phone = EXCLUDED.phone,
    updated_at = now()
`
	_, err := pool.Exec(ctx, q, shopperID, "Demo Shopper", "12 Market Street", "Pune", "9876543210")
	return err
}
