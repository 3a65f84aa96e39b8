package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth validates the admin JWT issued by the admin login endpoint and
// rejects tokens without the admin role claim.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
