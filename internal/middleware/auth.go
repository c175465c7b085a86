package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gayu2216/MarketPulse/internal/authz"
)

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies a Bearer token signed with secret and stores the
// requester identity in the gin context. This service never issues tokens;
// it only consumes identities established by the authentication service.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role = string(authz.RoleUser)
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", role)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetPrincipal rebuilds the authenticated principal from the gin context.
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return authz.Principal{}, false
	}
	role, exists := c.Get("role")
	if !exists {
		return authz.Principal{}, false
	}
	return authz.Principal{UserID: userID, Role: authz.Role(role.(string))}, true
}
