package checkout

import "grocery-storefront/internal/domain"

// Pricing constants. The delivery charge is a hard cutoff at the free
// delivery threshold, not a sliding scale. The handling charge is a
// display line only: always shown as FREE, never added to the payable
// amount.
const (
	FreeDeliveryThreshold = 200
	DeliveryChargeBelow   = 25
)

// Quote is the derived pricing for a set of cart lines. Every field is
// recomputed from the lines on each call; nothing is cached.
type Quote struct {
	ItemTotal            float64 `json:"itemTotal"`
	DeliveryCharge       float64 `json:"deliveryCharge"`
	HandlingCharge       float64 `json:"handlingCharge"`
	FinalPayable         float64 `json:"finalPayable"`
	AmountToFreeDelivery float64 `json:"amountToFreeDelivery"`
}

// QuoteFor derives the payable amount for the given lines.
func QuoteFor(lines []domain.CartLine) Quote {
	var itemTotal float64
	for _, line := range lines {
		itemTotal += line.LineTotal()
	}

	q := Quote{ItemTotal: itemTotal}
	if itemTotal < FreeDeliveryThreshold {
		q.DeliveryCharge = DeliveryChargeBelow
		q.AmountToFreeDelivery = FreeDeliveryThreshold - itemTotal
	}
	q.FinalPayable = itemTotal + q.DeliveryCharge
	return q
}
