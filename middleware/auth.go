package middleware

import (
	"net/http"
	"strings"

	"federation-backend/services"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
)

// RequireAuth validates the bearer token on every request. Expiry and the
// signing method are checked server side; nothing from the client is trusted.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims set by RequireAuth, or nil.
func GetClaims(c *gin.Context) *services.Claims {
	if val, exists := c.Get(ClaimsKey); exists {
		if claims, ok := val.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}
