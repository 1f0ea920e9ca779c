package httpserver

import (
	"net/http"

	"grocery-storefront/internal/domain"
	"grocery-storefront/internal/telemetry"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items     []domain.CartLine `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func cartState(c *gin.Context, svc cartService) cartResponse {
	ctx := c.Request.Context()
	uid := shopperID(c)
	items := svc.Lines(ctx, uid)
	if items == nil {
		items = []domain.CartLine{}
	}
	return cartResponse{
		Items:     items,
		Total:     svc.Total(ctx, uid),
		ItemCount: svc.ItemCount(ctx, uid),
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartState(c, svc))
	}
}

// addCartItemHandler takes a product snapshot in the body. The cart
// copies the display fields and price at add time, so later catalog
// edits do not reprice lines already in the cart.
func addCartItemHandler(svc cartService, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product payload"})
			return
		}
		if product.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "product id required"})
			return
		}

		svc.AddOrIncrement(c.Request.Context(), shopperID(c), product)
		countMutation(metrics, "add")
		c.JSON(http.StatusOK, cartState(c, svc))
	}
}

func incrementCartItemHandler(svc cartService, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Increment(c.Request.Context(), shopperID(c), c.Param("id"))
		countMutation(metrics, "increment")
		c.JSON(http.StatusOK, cartState(c, svc))
	}
}

func decrementCartItemHandler(svc cartService, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Decrement(c.Request.Context(), shopperID(c), c.Param("id"))
		countMutation(metrics, "decrement")
		c.JSON(http.StatusOK, cartState(c, svc))
	}
}

func clearCartHandler(svc cartService, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Clear(c.Request.Context(), shopperID(c))
		countMutation(metrics, "clear")
		c.JSON(http.StatusOK, cartState(c, svc))
	}
}

func countMutation(metrics *telemetry.Metrics, op string) {
	if metrics != nil {
		metrics.CartMutations.WithLabelValues(op).Inc()
	}
}
