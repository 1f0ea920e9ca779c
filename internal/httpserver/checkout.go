package httpserver

import (
	"errors"
	"net/http"

	"grocery-storefront/internal/auth"
	"grocery-storefront/internal/domain"
	"grocery-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// quoteHandler prices the current cart without submitting it, so the
// checkout view can show the delivery charge and the free-delivery
// nudge as the cart changes.
func quoteHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines := svc.Lines(c.Request.Context(), shopperID(c))
		c.JSON(http.StatusOK, checkout.QuoteFor(lines))
	}
}

func savedAddressHandler(addresses savedAddressBook) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, err := addresses.Get(c.Request.Context(), shopperID(c))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no saved address"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "load saved address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"address": addr})
	}
}

// submitCheckoutHandler runs the full submission workflow. Validation
// problems come back as 422 with a per-field message map; an empty cart
// is a 400; a backend failure with the fallback disabled is a 502. Both
// terminal outcomes answer 201 with the confirmation.
func submitCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout payload"})
			return
		}

		conf, err := svc.Submit(c.Request.Context(), shopperID(c), auth.TokenFrom(c), in)
		if err != nil {
			var verr *checkout.ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
			default:
				badGateway(c, err)
			}
			return
		}

		c.JSON(http.StatusCreated, conf)
	}
}
