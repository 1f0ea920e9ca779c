package order

import (
	"context"

	"grocery-storefront/internal/domain"
)

// Repository is the append-only local list of offline orders: fallback
// records written when the backend could not accept a submission. Entries
// are never removed or reconciled back to the backend.
type Repository interface {
	Append(ctx context.Context, shopperID string, order domain.OfflineOrder) error
	ListByShopper(ctx context.Context, shopperID string) ([]domain.OfflineOrder, error)
}
