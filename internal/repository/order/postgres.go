package order

import (
	"context"
	"encoding/json"
	"fmt"

	"grocery-storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Append(ctx context.Context, shopperID string, order domain.OfflineOrder) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal offline order: %w", err)
	}
	const q = `
INSERT INTO offline_orders (id, shopper_id, payload, created_at)
VALUES ($1, $2, $3, $4)
`
	_, err = r.pool.Exec(ctx, q, order.ID, shopperID, payload, order.Date)
	return err
}

func (r *postgresRepo) ListByShopper(ctx context.Context, shopperID string) ([]domain.OfflineOrder, error) {
	const q = `
SELECT payload
FROM offline_orders
WHERE shopper_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, shopperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.OfflineOrder
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var o domain.OfflineOrder
		if err := json.Unmarshal(payload, &o); err != nil {
			return nil, fmt.Errorf("unmarshal offline order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
