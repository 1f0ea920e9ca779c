package cart

import (
	"context"

	"grocery-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, shopperID string) ([]domain.CartLine, error) {
	const q = `
SELECT product_id, title, image, unit, price, qty
FROM cart_lines
WHERE shopper_id = $1
ORDER BY added_at, product_id
`
	rows, err := r.pool.Query(ctx, q, shopperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Title, &line.Image, &line.Unit, &line.Price, &line.Qty); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Save replaces the shopper's mirrored lines in one transaction, matching
// the last-write-wins semantics of the persisted cart key.
func (r *postgresRepo) Save(ctx context.Context, shopperID string, lines []domain.CartLine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE shopper_id = $1`, shopperID); err != nil {
		return err
	}

	const ins = `
INSERT INTO cart_lines (shopper_id, product_id, title, image, unit, price, qty)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, ins, shopperID, line.ProductID, line.Title, line.Image, line.Unit, line.Price, line.Qty); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, shopperID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE shopper_id = $1`, shopperID)
	return err
}
