package prosthesis

import (
	"strings"

	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateTypeRequest struct {
	Name       string   `json:"name" validate:"required"`
	BasePrice  float64  `json:"base_price" validate:"required,gt=0"`
	ModelPrice *float64 `json:"model_price" validate:"omitempty,gte=0"`
	Category   string   `json:"category"`
}

type UpdateTypeRequest struct {
	Name       *string  `json:"name"`
	BasePrice  *float64 `json:"base_price"`
	ModelPrice *float64 `json:"model_price"`
	Category   *string  `json:"category"`
}

type TypeResponse struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	BasePrice  *float64 `json:"base_price,omitempty"`
	ModelPrice *float64 `json:"model_price,omitempty"`
	Category   string   `json:"category"`
}

// POST /api/prosthesis-types  (admin)
func CreateTypeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTypeRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		pt := models.ProsthesisType{
			Name:       strings.TrimSpace(body.Name),
			BasePrice:  body.BasePrice,
			ModelPrice: body.ModelPrice,
			Category:   body.Category,
		}
		if err := database.DB.Create(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Protez tipi oluşturulamadı")
		}

		st.ApplyProsthesisType(pt)

		return c.Status(fiber.StatusCreated).JSON(toResponse(pt, true))
	}
}

// GET /api/prosthesis-types
func ListTypesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		showPrices := auth.CanViewPrices(c)

		resp := make([]TypeResponse, 0, len(sn.ProsthesisTypes))
		for _, pt := range sn.ProsthesisTypes {
			resp = append(resp, toResponse(pt, showPrices))
		}
		return c.JSON(resp)
	}
}

// PUT /api/prosthesis-types/:id  (admin)
//
// Fiyat değişiklikleri geriye dönük uygulanmaz; mevcut siparişlerin
// kayıtlı tutarları korunur.
func UpdateTypeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var pt models.ProsthesisType
		if err := database.DB.First(&pt, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Protez tipi bulunamadı")
		}

		var body UpdateTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			pt.Name = name
		}
		if body.BasePrice != nil {
			if *body.BasePrice <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Birim fiyat pozitif olmalı")
			}
			pt.BasePrice = *body.BasePrice
		}
		if body.ModelPrice != nil {
			if *body.ModelPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Model ücreti negatif olamaz")
			}
			pt.ModelPrice = body.ModelPrice
		}
		if body.Category != nil {
			pt.Category = *body.Category
		}

		if err := database.DB.Save(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Protez tipi güncellenemedi")
		}

		st.ApplyProsthesisType(pt)

		return c.JSON(toResponse(pt, true))
	}
}

func toResponse(pt models.ProsthesisType, showPrices bool) TypeResponse {
	resp := TypeResponse{ID: pt.ID, Name: pt.Name, Category: pt.Category}
	if showPrices {
		base := pt.BasePrice
		resp.BasePrice = &base
		resp.ModelPrice = pt.ModelPrice
	}
	return resp
}
