package address

import (
	"context"
	"errors"

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

func (r *postgresRepo) Save(ctx context.Context, shopperID string, addr domain.DeliveryAddress) error {
	const q = `
INSERT INTO saved_addresses (shopper_id, name, line1, city, phone, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (shopper_id) DO UPDATE SET
    name = EXCLUDED.name,
    line1 = EXCLUDED.line1,
    city = EXCLUDED.city,
    phone = EXCLUDED.phone,
    updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, shopperID, addr.Name, addr.Line1, addr.City, addr.Phone)
	return err
}

func (r *postgresRepo) Get(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error) {
	const q = `
SELECT name, line1, city, phone
FROM saved_addresses
WHERE shopper_id = $1
`
	var addr domain.DeliveryAddress
	if err := r.pool.QueryRow(ctx, q, shopperID).Scan(&addr.Name, &addr.Line1, &addr.City, &addr.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}
