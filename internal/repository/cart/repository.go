package cart

import (
	"context"

	"grocery-storefront/internal/domain"
)

// Repository mirrors a shopper's cart so it survives restarts. It is the
// server-side equivalent of the persisted cart key the browser UI reads
// at startup: written after every mutation, read once to rehydrate.
type Repository interface {
	Load(ctx context.Context, shopperID string) ([]domain.CartLine, error)
	Save(ctx context.Context, shopperID string, lines []domain.CartLine) error
	Delete(ctx context.Context, shopperID string) error
}
