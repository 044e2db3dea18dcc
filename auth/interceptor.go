package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ClaimsKey = "claims"

// Interceptor validates the token of a websocket handshake before the upgrade.
// The token comes from the "token" query parameter or an "Authorization: Bearer" header.
// With optional set, a missing or invalid token lets the request through unauthenticated.
func Interceptor(issuer *Issuer, role string, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		if tokenStr != "" {
			claims, err := issuer.ValidateToken(tokenStr)
			if err == nil && claims.HasRole(role) {
				c.Set(ClaimsKey, claims)
				c.Next()
				return
			}
		}

		if optional {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	}
}

// ClaimsFrom returns the claims stored by Interceptor, nil when unauthenticated.
func ClaimsFrom(c *gin.Context) *CustomClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*CustomClaims)
	return claims
}
