package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"grocery-storefront/internal/auth"
	"grocery-storefront/internal/backend"
	"grocery-storefront/internal/domain"
	"grocery-storefront/internal/service/catalog"
	"grocery-storefront/internal/service/checkout"
	"grocery-storefront/internal/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService interface {
	List(ctx context.Context, category, search string) []domain.Product
	Grouped(ctx context.Context, category, search string) []catalog.CategoryGroup
	Categories(ctx context.Context) []string
}

type cartService interface {
	Lines(ctx context.Context, shopperID string) []domain.CartLine
	AddOrIncrement(ctx context.Context, shopperID string, p domain.Product)
	Increment(ctx context.Context, shopperID, productID string)
	Decrement(ctx context.Context, shopperID, productID string)
	Clear(ctx context.Context, shopperID string)
	Total(ctx context.Context, shopperID string) float64
	ItemCount(ctx context.Context, shopperID string) int
}

type checkoutService interface {
	Submit(ctx context.Context, shopperID, token string, in checkout.Input) (*checkout.Confirmation, error)
}

type backendGateway interface {
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	Stats(ctx context.Context, token string) (*backend.Stats, error)
	Orders(ctx context.Context, token string) ([]domain.Order, error)
	Order(ctx context.Context, token, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token, id, status string) (*domain.Order, error)
	CreateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token, id string, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

type offlineOrderList interface {
	ListByShopper(ctx context.Context, shopperID string) ([]domain.OfflineOrder, error)
}

type savedAddressBook interface {
	Get(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error)
}

// Deps carries the services the router exposes.
type Deps struct {
	Catalog   catalogService
	Cart      cartService
	Checkout  checkoutService
	Backend   backendGateway
	Offline   offlineOrderList
	Addresses savedAddressBook
	Verifier  auth.TokenVerifier
	Metrics   *telemetry.Metrics

	CORSOrigins []string
}

// buildRouter wires the storefront and admin routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("catalog service required")
	case deps.Cart == nil:
		return nil, errors.New("cart service required")
	case deps.Checkout == nil:
		return nil, errors.New("checkout service required")
	case deps.Backend == nil:
		return nil, errors.New("backend client required")
	case deps.Offline == nil:
		return nil, errors.New("offline order repository required")
	case deps.Addresses == nil:
		return nil, errors.New("address repository required")
	case deps.Verifier == nil:
		return nil, errors.New("token verifier required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api")
	api.GET("/products", listProductsHandler(deps.Catalog))

	shopper := api.Group("", auth.RequireShopper(deps.Verifier))
	{
		shopper.GET("/cart", getCartHandler(deps.Cart))
		shopper.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Metrics))
		shopper.POST("/cart/items/:id/increment", incrementCartItemHandler(deps.Cart, deps.Metrics))
		shopper.POST("/cart/items/:id/decrement", decrementCartItemHandler(deps.Cart, deps.Metrics))
		shopper.DELETE("/cart", clearCartHandler(deps.Cart, deps.Metrics))

		shopper.GET("/checkout/quote", quoteHandler(deps.Cart))
		shopper.GET("/checkout/address", savedAddressHandler(deps.Addresses))
		shopper.POST("/checkout", submitCheckoutHandler(deps.Checkout))

		shopper.GET("/orders", myOrdersHandler(deps.Backend))
		shopper.GET("/orders/offline", offlineOrdersHandler(deps.Offline))
	}

	admin := api.Group("/admin", auth.RequireShopper(deps.Verifier), auth.RequireAdmin())
	{
		admin.GET("/stats", statsHandler(deps.Backend))
		admin.GET("/orders", adminOrdersHandler(deps.Backend))
		admin.GET("/orders/:id", adminOrderHandler(deps.Backend))
		admin.PUT("/orders/:id/status", updateOrderStatusHandler(deps.Backend))
		admin.POST("/products", createProductHandler(deps.Backend))
		admin.PUT("/products/:id", updateProductHandler(deps.Backend))
		admin.DELETE("/products/:id", deleteProductHandler(deps.Backend))
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func shopperID(c *gin.Context) string {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return ""
	}
	return ident.UID
}

func badGateway(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
}
