package httpserver

import (
	"net/http"

	"grocery-storefront/internal/auth"
	"grocery-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

func statsHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := gateway.Stats(c.Request.Context(), auth.TokenFrom(c))
		if err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func adminOrdersHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := gateway.Orders(c.Request.Context(), auth.TokenFrom(c))
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

func adminOrderHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := gateway.Order(c.Request.Context(), auth.TokenFrom(c), c.Param("id"))
		if err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// updateOrderStatusHandler rejects statuses outside the fixed lifecycle
// before touching the backend.
func updateOrderStatusHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status payload"})
			return
		}
		if !domain.ValidOrderStatus(body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown order status"})
			return
		}

		order, err := gateway.UpdateOrderStatus(c.Request.Context(), auth.TokenFrom(c), c.Param("id"), body.Status)
		if err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func createProductHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product payload"})
			return
		}

		created, err := gateway.CreateProduct(c.Request.Context(), auth.TokenFrom(c), product)
		if err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": created})
	}
}

func updateProductHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product payload"})
			return
		}

		updated, err := gateway.UpdateProduct(c.Request.Context(), auth.TokenFrom(c), c.Param("id"), product)
		if err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": updated})
	}
}

func deleteProductHandler(gateway backendGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gateway.DeleteProduct(c.Request.Context(), auth.TokenFrom(c), c.Param("id")); err != nil {
			badGateway(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
