package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"assetdesk/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestJWTMiddlewareRoundtrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	issued := Claims{
		UserID:     7,
		Role:       roles.DepartmentHead,
		Email:      "head@example.com",
		Department: "Finance",
		Name:       "Jordan",
	}
	token, err := GenerateJWT(issued)
	assert.NoError(t, err)

	router := gin.New()
	router.GET("/whoami", JWTMiddleware(), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		assert.True(t, ok)
		assert.Equal(t, issued, claims)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/whoami", JWTMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// No header
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin-only", func(c *gin.Context) {
		c.Set(claimsContextKey, Claims{Role: roles.Clerk})
	}, Authorize(roles.Admin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
