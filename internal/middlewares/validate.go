package middlewares

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate: istek gövdesini dst'ye parse eder ve validate tag'lerine
// göre doğrular. Hatalar fiber hatası olarak döner.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz alanlar: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Doğrulama hatası")
	}
	return nil
}

// ValidateStruct: herhangi bir struct'ı paylaşılan validator ile doğrular.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
