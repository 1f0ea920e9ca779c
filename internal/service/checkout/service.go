package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"grocery-storefront/internal/backend"
	"grocery-storefront/internal/domain"
	"grocery-storefront/internal/telemetry"
	"github.com/google/uuid"
)

type cartStore interface {
	Lines(ctx context.Context, shopperID string) []domain.CartLine
	Clear(ctx context.Context, shopperID string)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, token string, in backend.CreateOrderRequest) (*domain.Order, error)
}

type offlineOrders interface {
	Append(ctx context.Context, shopperID string, order domain.OfflineOrder) error
}

type addressBook interface {
	Save(ctx context.Context, shopperID string, addr domain.DeliveryAddress) error
}

// Config names the workflow's policy knobs.
type Config struct {
	// FallbackOnError converts a failed backend submission into a locally
	// recorded offline order and a normal-looking confirmation. This is
	// the storefront's deliberate soft-landing policy; disabling it makes
	// Submit return the backend error instead.
	FallbackOnError bool
}

// Service turns the current cart plus the shopper's delivery and payment
// choices into either a backend-confirmed order or a locally persisted
// offline order. Both terminal outcomes leave the cart empty and hand the
// shopper a confirmation.
type Service struct {
	cart      cartStore
	backend   orderCreator
	offline   offlineOrders
	addresses addressBook
	metrics   *telemetry.Metrics
	logger    *log.Logger
	cfg       Config

	now   func() time.Time
	newID func() string
}

func New(cart cartStore, orders orderCreator, offline offlineOrders, addresses addressBook, metrics *telemetry.Metrics, logger *log.Logger, cfg Config) *Service {
	return &Service{
		cart:      cart,
		backend:   orders,
		offline:   offline,
		addresses: addresses,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Confirmation is the terminal outcome of a submission. Exactly one of
// Order and OfflineOrder is set; both routes land the shopper on the
// confirmation view.
type Confirmation struct {
	Order        *domain.Order        `json:"order,omitempty"`
	OfflineOrder *domain.OfflineOrder `json:"offlineOrder,omitempty"`
	Fallback     bool                 `json:"fallback"`
	Quote        Quote                `json:"quote"`
}

// Submit validates the input, prices the cart and sends the order to the
// backend. Validation failures return a *ValidationError before any
// network call. An empty cart returns domain.ErrEmptyCart.
func (s *Service) Submit(ctx context.Context, shopperID, token string, in Input) (*Confirmation, error) {
	if verr := Validate(in); verr != nil {
		return nil, verr
	}

	lines := s.cart.Lines(ctx, shopperID)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	quote := QuoteFor(lines)

	addr := domain.DeliveryAddress{
		Name:  strings.TrimSpace(in.Name),
		Line1: strings.TrimSpace(in.Address),
		City:  strings.TrimSpace(in.City),
		Phone: strings.TrimSpace(in.Phone),
	}

	// Cached on every attempt, regardless of outcome, so the next
	// checkout can offer a one-click saved address.
	if err := s.addresses.Save(ctx, shopperID, addr); err != nil {
		s.logger.Printf("save address for %s: %v", shopperID, err)
	}

	req := backend.CreateOrderRequest{
		Products:        productsForBackend(lines),
		TotalPrice:      quote.FinalPayable,
		DeliveryOption:  in.DeliveryType,
		PaymentMethod:   wirePaymentMethod(in.PaymentMethod),
		DeliveryAddress: addr,
	}

	order, err := s.backend.CreateOrder(ctx, token, req)
	if err == nil {
		s.cart.Clear(ctx, shopperID)
		if s.metrics != nil {
			s.metrics.OrdersConfirmed.Inc()
		}
		return &Confirmation{Order: order, Quote: quote}, nil
	}

	if !s.cfg.FallbackOnError {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Printf("order submission for %s failed, recording offline: %v", shopperID, err)

	off := domain.OfflineOrder{
		ID:            s.newID(),
		Items:         lines,
		FinalPay:      quote.FinalPayable,
		Date:          s.now().UTC(),
		Address:       addr,
		DeliveryType:  in.DeliveryType,
		PaymentMethod: in.PaymentMethod,
		Offline:       true,
	}
	if err := s.offline.Append(ctx, shopperID, off); err != nil {
		s.logger.Printf("append offline order for %s: %v", shopperID, err)
	}
	s.cart.Clear(ctx, shopperID)
	if s.metrics != nil {
		s.metrics.OrdersOffline.Inc()
	}
	return &Confirmation{OfflineOrder: &off, Fallback: true, Quote: quote}, nil
}

func productsForBackend(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID:    line.ProductID,
			Title:        line.Title,
			Image:        line.Image,
			Unit:         line.Unit,
			PriceAtOrder: line.Price,
			Quantity:     line.Qty,
		})
	}
	return items
}

// wirePaymentMethod maps the UI's payment selection to the backend's
// vocabulary: Online pays over UPI, COD stays COD.
func wirePaymentMethod(method string) string {
	if method == domain.PaymentOnline {
		return "UPI"
	}
	return method
}
