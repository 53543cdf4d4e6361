package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Niku17/JobSift/pkg/token"
)

// JWTAuthMiddleware verifies the bearer token and exposes the
// principal to handlers under the user_id and role keys.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
			raw = after
		}
		if raw == "" {
			raw = c.GetHeader("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := token.Parse(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireEmployer gates the employer-only routes. It must run after
// JWTAuthMiddleware.
func RequireEmployer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "employer" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "employer access only"})
			return
		}
		c.Next()
	}
}
