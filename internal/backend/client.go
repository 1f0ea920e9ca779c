package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"grocery-storefront/internal/domain"
)

// Client talks to the remote grocery backend API. Requests are plain
// fire-and-forget HTTP calls: no retries, the transport timeout is the
// only reliability mechanism.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CreateOrderRequest is the order-creation wire body. PaymentMethod
// carries the backend value ("UPI" or "COD"), already mapped by checkout.
type CreateOrderRequest struct {
	Products        []domain.OrderItem     `json:"products"`
	TotalPrice      float64                `json:"totalPrice"`
	DeliveryOption  string                 `json:"deliveryOption"`
	PaymentMethod   string                 `json:"paymentMethod"`
	DeliveryAddress domain.DeliveryAddress `json:"deliveryAddress"`
}

// Stats is the admin dashboard aggregate returned by the backend.
type Stats struct {
	TotalRevenue    float64            `json:"totalRevenue"`
	TotalOrders     int                `json:"totalOrders"`
	UniqueCustomers int                `json:"uniqueCustomers"`
	SalesTrend      map[string]float64 `json:"salesTrend"`
	ProductMix      json.RawMessage    `json:"productMix,omitempty"`
	RecentOrders    []domain.Order     `json:"recentOrders,omitempty"`
}

// CreateOrder submits an order. Any non-2xx status, transport error or
// malformed body is returned as an error; the caller decides whether to
// fall back to local persistence.
func (c *Client) CreateOrder(ctx context.Context, token string, in CreateOrderRequest) (*domain.Order, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/orders/create", token, in)
	if err != nil {
		return nil, err
	}
	var out struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if out.Order == nil {
		return nil, errors.New("order response missing order")
	}
	return out.Order, nil
}

// ListProducts fetches the catalog. The backend has returned both a bare
// array and a {products: [...]} wrapper over time, so accept either.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/products", "", nil)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Products != nil {
		return wrapped.Products, nil
	}
	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}
	return products, nil
}

// MyOrders fetches the shopper's backend-confirmed order history.
func (c *Client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/orders/myorders", token, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrders(body)
}

// Stats fetches the admin dashboard aggregates.
func (c *Client) Stats(ctx context.Context, token string) (*Stats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/stats", token, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Stats *Stats `json:"stats"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	if out.Stats == nil {
		return nil, errors.New("stats response missing stats")
	}
	return out.Stats, nil
}

// Orders fetches all orders for the admin console.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/orders", token, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrders(body)
}

// Order fetches a single order for the admin detail view.
func (c *Client) Order(ctx context.Context, token, id string) (*domain.Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/orders/"+id, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(body)
}

// UpdateOrderStatus moves an order to a new fulfilment state.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id, status string) (*domain.Order, error) {
	in := map[string]string{"status": status}
	body, err := c.do(ctx, http.MethodPut, "/api/admin/orders/"+id+"/status", token, in)
	if err != nil {
		return nil, err
	}
	return decodeOrder(body)
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/products", token, p)
	if err != nil {
		return nil, err
	}
	return decodeProduct(body)
}

// UpdateProduct replaces a catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, p domain.Product) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/products/"+id, token, p)
	if err != nil {
		return nil, err
	}
	return decodeProduct(body)
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/products/"+id, token, nil)
	return err
}

// do performs one JSON request and returns the response body when the
// status is 2xx. The backend's error message, if present, is folded into
// the returned error.
func (c *Client) do(ctx context.Context, method, path, token string, in interface{}) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Message != "" {
			return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	return body, nil
}

func decodeOrders(body []byte) ([]domain.Order, error) {
	var wrapped struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Orders != nil {
		return wrapped.Orders, nil
	}
	var orders []domain.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode orders response: %w", err)
	}
	return orders, nil
}

func decodeOrder(body []byte) (*domain.Order, error) {
	var out struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if out.Order == nil {
		return nil, errors.New("order response missing order")
	}
	return out.Order, nil
}

func decodeProduct(body []byte) (*domain.Product, error) {
	var out struct {
		Product *domain.Product `json:"product"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	if out.Product == nil {
		return nil, errors.New("product response missing product")
	}
	return out.Product, nil
}
