package users

import (
	"strings"

	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username      string `json:"username" validate:"required,min=3"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Role          string `json:"role" validate:"required,oneof=admin technician accountant"`
	CanViewPrices bool   `json:"can_view_prices"`
}

type UpdateUserRequest struct {
	Password      *string `json:"password"`
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Role          *string `json:"role"`
	CanViewPrices *bool   `json:"can_view_prices"`
	IsActive      *bool   `json:"is_active"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	CanViewPrices bool   `json:"can_view_prices"`
	IsActive      bool   `json:"is_active"`
}

// POST /api/users  (admin)
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		username := strings.ToLower(strings.TrimSpace(body.Username))
		var existing models.User
		if err := database.DB.First(&existing, "username = ?", username).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten kullanılıyor")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre oluşturulamadı")
		}

		user := models.User{
			Username:      username,
			PasswordHash:  string(hash),
			Name:          strings.TrimSpace(body.Name),
			Email:         body.Email,
			Phone:         body.Phone,
			Role:          models.UserRole(body.Role),
			CanViewPrices: body.CanViewPrices,
			IsActive:      true,
		}

		// Fiyat görünürlüğü role bağlı varsayılanla açılır, admin her zaman görür.
		if user.Role == models.RoleAdmin {
			user.CanViewPrices = true
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(user))
	}
}

// GET /api/users  (admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.User
		if err := database.DB.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		resp := make([]UserResponse, 0, len(list))
		for _, u := range list {
			resp = append(resp, toResponse(u))
		}
		return c.JSON(resp)
	}
}

// PUT /api/users/:id  (admin)
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Password != nil {
			if len(*body.Password) < 8 {
				return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 8 karakter olmalı")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre oluşturulamadı")
			}
			user.PasswordHash = string(hash)
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			user.Name = name
		}
		if body.Email != nil {
			user.Email = *body.Email
		}
		if body.Phone != nil {
			user.Phone = *body.Phone
		}
		if body.Role != nil {
			role := models.UserRole(*body.Role)
			if role != models.RoleAdmin && role != models.RoleTechnician && role != models.RoleAccountant {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
			}
			user.Role = role
		}
		if body.CanViewPrices != nil {
			user.CanViewPrices = *body.CanViewPrices
		}
		if body.IsActive != nil {
			userID, _ := auth.CurrentUser(c)
			if !*body.IsActive && user.ID == userID {
				return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı pasifleştiremezsiniz")
			}
			user.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(toResponse(user))
	}
}

// DELETE /api/users/:id  (admin)
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		userID, _ := auth.CurrentUser(c)
		if user.ID == userID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı silemezsiniz")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Kullanıcı silindi"})
	}
}

func toResponse(u models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		CanViewPrices: u.CanViewPrices,
		IsActive:      u.IsActive,
	}
}
