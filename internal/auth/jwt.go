package auth

import (
	"time"

	"protezlab-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID        uint            `json:"user_id"`
	Username      string          `json:"username"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	CanViewPrices bool            `json:"can_view_prices"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:        user.ID,
		Username:      user.Username,
		Name:          user.Name,
		Role:          user.Role,
		CanViewPrices: user.CanViewPrices,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 gün
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
