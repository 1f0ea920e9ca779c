package httpserver

import (
	"net/http"

	"grocery-storefront/internal/auth"
	"grocery-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

// myOrdersHandler proxies the shopper's order history from the backend,
// forwarding their bearer token unchanged.
func myOrdersHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := gateway.MyOrders(c.Request.Context(), auth.TokenFrom(c))
		if err != nil {
			badGateway(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// offlineOrdersHandler lists the orders recorded locally when the
// backend was unreachable, in append order.
func offlineOrdersHandler(offline offlineOrderList) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := offline.ListByShopper(c.Request.Context(), shopperID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "load offline orders"})
			return
		}
		if orders == nil {
			orders = []domain.OfflineOrder{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
