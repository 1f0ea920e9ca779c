package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "auth.identity"
	tokenKey    = "auth.token"
)

// RequireShopper rejects requests without a valid bearer token and stores
// the identity plus the raw token on the request context. The raw token
// is kept so it can be forwarded to the backend API on the shopper's
// behalf.
func RequireShopper(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set(identityKey, ident)
		c.Set(tokenKey, raw)
		c.Next()
	}
}

// RequireAdmin gates admin routes. It must run after RequireShopper.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok || !ident.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the verified identity stored by RequireShopper.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*Identity)
	return ident, ok
}

// TokenFrom returns the raw bearer token stored by RequireShopper.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
