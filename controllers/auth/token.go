package authControllers

import (
	"os"
	"strconv"
	"time"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs a stateless HS256 token carrying the user id and
// role. Expiry comes from JWT_EXPIRE_HOURS (default 7 days).
func GenerateToken(user models.User) (string, error) {
	expireHours := 168
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			expireHours = h
		}
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Duration(expireHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
