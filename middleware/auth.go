// File: /middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"perfectspot-api/utils"
)

// bearerUserID extracts and verifies the user id from an Authorization header.
// Returns an empty string when the header is missing or the token invalid.
func bearerUserID(c *gin.Context, jwtSecret string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}

	userID, _ := claims["user_id"].(string)
	return userID
}

// AuthMiddleware rejects requests without a valid bearer token and sets
// "user_id" on the context for downstream handlers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := bearerUserID(c, jwtSecret)
		if userID == "" {
			utils.SendError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets "user_id" if a valid token is present but never
// fails the request. Used on read endpoints open to anonymous callers.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := bearerUserID(c, jwtSecret); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
