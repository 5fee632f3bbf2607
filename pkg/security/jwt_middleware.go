package security

import (
	"fmt"
	"net/http"
	"strings"

	"assetdesk/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsContextKey = "authClaims"

// Claims is the caller identity embedded in every issued token.
type Claims struct {
	UserID     int
	Role       roles.Role
	Email      string
	Department string
	Name       string
}

// JWTMiddleware validates the bearer token and attaches the caller identity
// to the request context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		mapClaims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		claims := Claims{
			Role:       roles.Role(stringClaim(mapClaims, "role")),
			Email:      stringClaim(mapClaims, "email"),
			Department: stringClaim(mapClaims, "department"),
			Name:       stringClaim(mapClaims, "name"),
		}
		if id, ok := mapClaims["id"].(float64); ok {
			claims.UserID = int(id)
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// Authorize ensures the caller's role meets the required hierarchy level.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || !claims.Role.HasPermission(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the identity attached by JWTMiddleware.
func CurrentClaims(c *gin.Context) (Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return Claims{}, false
	}
	claims, ok := value.(Claims)
	return claims, ok
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
