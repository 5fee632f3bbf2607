package security

import (
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

const tokenTTL = 8 * time.Hour

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// main may not have loaded .env yet when package init runs
		if err := godotenv.Load(); err == nil {
			secret = os.Getenv("JWT_SECRET")
		}
	}

	if secret == "" {
		log.Println("Warning: JWT_SECRET is not set, falling back to the development secret")
		secret = "devsecret"
	}

	jwtSecret = []byte(secret)
}

// GenerateJWT issues a signed token carrying the caller identity.
func GenerateJWT(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":         claims.UserID,
		"role":       claims.Role.String(),
		"email":      claims.Email,
		"department": claims.Department,
		"name":       claims.Name,
		"exp":        time.Now().Add(tokenTTL).Unix(),
	})

	return token.SignedString(jwtSecret)
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a stored bcrypt hash against a candidate password.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
