package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates the operator account configured through the
// environment and returns a short-lived token carrying the admin role.
func AdminLogin(adminEmail, adminPassword, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/login"
		defer handlePanic(c, route)

		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if adminEmail == "" || adminPassword == "" {
			log.Println("[AUTH] [ERROR] admin login attempted but admin credentials are not configured")
			respondWithError(c, http.StatusInternalServerError, route, "admin login is not configured")
			return
		}

		emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(adminEmail)) == 1
		passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) == 1
		if !emailOK || !passwordOK {
			log.Println("[AUTH] [ERROR] admin login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"role":  "admin",
			"email": adminEmail,
			"exp":   now.Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] admin login succeeded")
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"accessToken": token,
			"expiresIn":   int64(time.Hour.Seconds()),
		})
	}
}

// VerifyAdmin confirms that the presented token passed AdminAuth.
func VerifyAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "role": "admin"})
	}
}
