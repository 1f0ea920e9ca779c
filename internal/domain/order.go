package domain

import "time"

// Delivery and payment selections offered at checkout. The wire value for
// online payment differs from the UI value; see checkout.
const (
	DeliveryHome   = "Home"
	DeliveryPickup = "Pickup"

	PaymentCOD    = "COD"
	PaymentOnline = "Online"
)

// OrderStatuses are the fulfilment states the admin console can assign.
var OrderStatuses = []string{"Pending", "Packed", "Out for delivery", "Delivered", "Cancelled"}

// ValidOrderStatus reports whether s is a known fulfilment state.
func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type DeliveryAddress struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// OrderItem is one cart line as submitted to the backend, with the price
// frozen at order time.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	Title        string  `json:"title"`
	Image        string  `json:"image,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	PriceAtOrder float64 `json:"priceAtOrder"`
	Quantity     int     `json:"quantity"`
}

// Order is a backend-confirmed order.
type Order struct {
	ID              string          `json:"_id"`
	Products        []OrderItem     `json:"products"`
	TotalPrice      float64         `json:"totalPrice"`
	DeliveryOption  string          `json:"deliveryOption,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress,omitempty"`
	Status          string          `json:"status,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OfflineOrder is the locally persisted fallback record written when the
// backend rejects or never receives an order submission. It carries a
// locally generated id and is never reconciled back to the backend.
type OfflineOrder struct {
	ID            string          `json:"id"`
	Items         []CartLine      `json:"items"`
	FinalPay      float64         `json:"finalPay"`
	Date          time.Time       `json:"date"`
	Address       DeliveryAddress `json:"address"`
	DeliveryType  string          `json:"deliveryType"`
	PaymentMethod string          `json:"paymentMethod"`
	Offline       bool            `json:"offline"`
}
