package address

import (
	"context"

	"grocery-storefront/internal/domain"
)

// Repository keeps the delivery address cached on every checkout attempt
// so a future checkout can offer it as a one-click default.
type Repository interface {
	Save(ctx context.Context, shopperID string, addr domain.DeliveryAddress) error
	Get(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error)
}
