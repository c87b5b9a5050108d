package auth

import (
	"fmt"
	"strings"

	"protezlab-backend/internal/config"
	"protezlab-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey        = "user_id"
	CtxUserNameKey      = "user_name"
	CtxUserRoleKey      = "user_role"
	CtxCanViewPricesKey = "can_view_prices"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.Name)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxCanViewPricesKey, claims.CanViewPrices)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

// RequirePriceAccess: tamamen fiyat verisinden oluşan uçlar için.
// Kısmi maskeleme yeterli olan liste uçları bunun yerine CanViewPrices
// ile alan bazında maskeler.
func RequirePriceAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CanViewPrices(c) {
			return fiber.NewError(fiber.StatusForbidden, "Fiyat bilgilerini görme yetkiniz yok")
		}
		return c.Next()
	}
}

// CanViewPrices: fiyat alanlarının maskelenip maskelenmeyeceği.
func CanViewPrices(c *fiber.Ctx) bool {
	v, ok := c.Locals(CtxCanViewPricesKey).(bool)
	return ok && v
}

// CurrentUser: audit kayıtları için kimlik bilgisi.
func CurrentUser(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals(CtxUserIDKey).(uint)
	name, _ := c.Locals(CtxUserNameKey).(string)
	return id, name
}
