package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"grocery-storefront/internal/backend"
	"grocery-storefront/internal/domain"
)

type stubCart struct {
	lines      []domain.CartLine
	clearCalls int
}

func (s *stubCart) Lines(_ context.Context, _ string) []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *stubCart) Clear(_ context.Context, _ string) {
	s.clearCalls++
	s.lines = nil
}

type stubBackend struct {
	order   *domain.Order
	err     error
	calls   int
	lastReq backend.CreateOrderRequest
}

func (s *stubBackend) CreateOrder(_ context.Context, _ string, in backend.CreateOrderRequest) (*domain.Order, error) {
	s.calls++
	s.lastReq = in
	return s.order, s.err
}

type stubOffline struct {
	appended []domain.OfflineOrder
	err      error
}

func (s *stubOffline) Append(_ context.Context, _ string, order domain.OfflineOrder) error {
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, order)
	return nil
}

type stubAddresses struct {
	saved *domain.DeliveryAddress
	err   error
}

func (s *stubAddresses) Save(_ context.Context, _ string, addr domain.DeliveryAddress) error {
	if s.err != nil {
		return s.err
	}
	s.saved = &addr
	return nil
}

func newTestService(cart *stubCart, be *stubBackend, offline *stubOffline, addrs *stubAddresses) *Service {
	svc := New(cart, be, offline, addrs, nil, log.New(io.Discard, "", 0), Config{FallbackOnError: true})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "offline-1" }
	return svc
}

func oneLineCart() *stubCart {
	return &stubCart{lines: []domain.CartLine{{ProductID: "p1", Title: "Toor Dal", Price: 50, Qty: 2}}}
}

func TestSubmitValidationFailureMakesNoBackendCall(t *testing.T) {
	cart := oneLineCart()
	be := &stubBackend{}
	svc := newTestService(cart, be, &stubOffline{}, &stubAddresses{})

	in := validInput()
	in.Phone = "12345"
	_, err := svc.Submit(context.Background(), "s1", "tok", in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["phone"]; !ok {
		t.Fatalf("expected phone error, got %+v", verr.Fields)
	}
	if be.calls != 0 {
		t.Fatalf("expected no backend call, got %d", be.calls)
	}
	if cart.clearCalls != 0 {
		t.Fatalf("cart must not be cleared on validation failure")
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	svc := newTestService(&stubCart{}, &stubBackend{}, &stubOffline{}, &stubAddresses{})
	if _, err := svc.Submit(context.Background(), "s1", "tok", validInput()); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitConfirmed(t *testing.T) {
	cart := oneLineCart()
	be := &stubBackend{order: &domain.Order{ID: "o1", TotalPrice: 125}}
	offline := &stubOffline{}
	addrs := &stubAddresses{}
	svc := newTestService(cart, be, offline, addrs)

	in := validInput()
	in.PaymentMethod = domain.PaymentOnline
	conf, err := svc.Submit(context.Background(), "s1", "tok", in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if conf.Fallback || conf.Order == nil || conf.Order.ID != "o1" {
		t.Fatalf("expected backend order confirmation, got %+v", conf)
	}
	if cart.clearCalls != 1 {
		t.Fatalf("expected exactly one cart clear, got %d", cart.clearCalls)
	}
	if len(offline.appended) != 0 {
		t.Fatalf("no offline order expected on success, got %+v", offline.appended)
	}
	if be.lastReq.PaymentMethod != "UPI" {
		t.Fatalf("expected Online mapped to UPI on the wire, got %q", be.lastReq.PaymentMethod)
	}
	// 100 of items, under the 200 threshold, plus 25 delivery.
	if be.lastReq.TotalPrice != 125 {
		t.Fatalf("expected totalPrice 125, got %v", be.lastReq.TotalPrice)
	}
	if len(be.lastReq.Products) != 1 || be.lastReq.Products[0].PriceAtOrder != 50 || be.lastReq.Products[0].Quantity != 2 {
		t.Fatalf("unexpected wire products %+v", be.lastReq.Products)
	}
	if addrs.saved == nil || addrs.saved.Phone != "9876543210" {
		t.Fatalf("expected address cached, got %+v", addrs.saved)
	}
}

func TestSubmitFallbackOnBackendFailure(t *testing.T) {
	cart := oneLineCart()
	be := &stubBackend{err: errors.New("backend down")}
	offline := &stubOffline{}
	addrs := &stubAddresses{}
	svc := newTestService(cart, be, offline, addrs)

	conf, err := svc.Submit(context.Background(), "s1", "tok", validInput())
	if err != nil {
		t.Fatalf("fallback submit must not fail: %v", err)
	}

	if !conf.Fallback || conf.OfflineOrder == nil {
		t.Fatalf("expected fallback confirmation, got %+v", conf)
	}
	if conf.OfflineOrder.FinalPay != 125 {
		t.Fatalf("expected offline finalPay 125, got %v", conf.OfflineOrder.FinalPay)
	}
	if !conf.OfflineOrder.Offline || conf.OfflineOrder.ID != "offline-1" {
		t.Fatalf("expected flagged offline order with local id, got %+v", conf.OfflineOrder)
	}
	if conf.OfflineOrder.PaymentMethod != domain.PaymentCOD {
		t.Fatalf("offline record keeps the UI payment value, got %q", conf.OfflineOrder.PaymentMethod)
	}
	if len(offline.appended) != 1 {
		t.Fatalf("expected one offline order appended, got %d", len(offline.appended))
	}
	if cart.clearCalls != 1 {
		t.Fatalf("expected exactly one cart clear, got %d", cart.clearCalls)
	}
	if addrs.saved == nil {
		t.Fatal("address must be cached on the fallback path too")
	}
}

func TestSubmitFallbackDisabledSurfacesError(t *testing.T) {
	cart := oneLineCart()
	be := &stubBackend{err: errors.New("backend down")}
	offline := &stubOffline{}
	svc := New(cart, be, offline, &stubAddresses{}, nil, log.New(io.Discard, "", 0), Config{FallbackOnError: false})

	if _, err := svc.Submit(context.Background(), "s1", "tok", validInput()); err == nil {
		t.Fatal("expected backend error to surface with fallback disabled")
	}
	if len(offline.appended) != 0 {
		t.Fatalf("no offline order expected, got %+v", offline.appended)
	}
	if cart.clearCalls != 0 {
		t.Fatalf("cart must stay intact when the error surfaces, clears=%d", cart.clearCalls)
	}
}

func TestSubmitTolerateAddressAndOfflineWriteFailures(t *testing.T) {
	cart := oneLineCart()
	be := &stubBackend{err: errors.New("backend down")}
	offline := &stubOffline{err: errors.New("db down")}
	addrs := &stubAddresses{err: errors.New("db down")}
	svc := newTestService(cart, be, offline, addrs)

	conf, err := svc.Submit(context.Background(), "s1", "tok", validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !conf.Fallback {
		t.Fatalf("expected fallback confirmation, got %+v", conf)
	}
	if cart.clearCalls != 1 {
		t.Fatalf("cart must still be cleared, clears=%d", cart.clearCalls)
	}
}
