package backend

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"grocery-storefront/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCreateOrderSendsWireBody(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders/create" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"order":{"_id":"o1","totalPrice":125}}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	order, err := client.CreateOrder(context.Background(), "tok-123", CreateOrderRequest{
		Products: []domain.OrderItem{
			{ProductID: "p1", Title: "Basmati Rice", PriceAtOrder: 50, Quantity: 2},
		},
		TotalPrice:      125,
		DeliveryOption:  domain.DeliveryHome,
		PaymentMethod:   "UPI",
		DeliveryAddress: domain.DeliveryAddress{Name: "Asha", Line1: "12 Main Rd", City: "Pune", Phone: "9876543210"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "o1" || order.TotalPrice != 125 {
		t.Fatalf("unexpected order %+v", order)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["paymentMethod"] != "UPI" || gotBody["deliveryOption"] != "Home" {
		t.Fatalf("unexpected wire body: %+v", gotBody)
	}
	products, ok := gotBody["products"].([]interface{})
	if !ok || len(products) != 1 {
		t.Fatalf("expected one wire product, got %+v", gotBody["products"])
	}
}

func TestCreateOrderNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"order error"}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	if _, err := client.CreateOrder(context.Background(), "tok", CreateOrderRequest{}); err == nil {
		t.Fatal("expected error for 500 response")
	} else if !strings.Contains(err.Error(), "order error") {
		t.Fatalf("expected backend message in error, got %v", err)
	}
}

func TestCreateOrderMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	if _, err := client.CreateOrder(context.Background(), "tok", CreateOrderRequest{}); err == nil {
		t.Fatal("expected error for body without order")
	}
}

func TestListProductsAcceptsBareArrayAndWrapper(t *testing.T) {
	bodies := []string{
		`[{"_id":"p1","title":"Rice","price":120}]`,
		`{"products":[{"_id":"p1","title":"Rice","price":120}]}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/products" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			io.WriteString(w, body)
		}))

		client := New(srv.URL, time.Second, testLogger())
		products, err := client.ListProducts(context.Background())
		srv.Close()
		if err != nil {
			t.Fatalf("ListProducts(%s): %v", body, err)
		}
		if len(products) != 1 || products[0].ID != "p1" || products[0].Price != 120 {
			t.Fatalf("unexpected products for %s: %+v", body, products)
		}
	}
}

func TestUpdateOrderStatusPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/orders/o1/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "Packed" {
			t.Errorf("unexpected status body %+v", body)
		}
		io.WriteString(w, `{"order":{"_id":"o1","status":"Packed"}}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	order, err := client.UpdateOrderStatus(context.Background(), "tok", "o1", "Packed")
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if order.Status != "Packed" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestDeleteProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/products/p9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	if err := client.DeleteProduct(context.Background(), "tok", "p9"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
}
