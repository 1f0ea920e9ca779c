package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listProductsHandler serves the public catalog. The optional "grouped"
// flag returns category sections instead of a flat list, and "category"
// plus "search" narrow the listing the same way the storefront filters
// do.
func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		search := c.Query("search")

		if c.Query("grouped") == "true" {
			c.JSON(http.StatusOK, gin.H{
				"categories": svc.Categories(c.Request.Context()),
				"groups":     svc.Grouped(c.Request.Context(), category, search),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": svc.List(c.Request.Context(), category, search),
		})
	}
}
