package reporting

import (
	"time"

	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func periodFromQuery(c *fiber.Ctx) (int, int, error) {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month 1-12 arasında olmalı")
	}
	return year, month, nil
}

// GET /api/reports/financial?year=2025&month=6  (fiyat görme yetkisi gerekir)
func FinancialSummaryHandler(st *store.Store, basis RevenueBasis) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := periodFromQuery(c)
		if err != nil {
			return err
		}
		return c.JSON(Monthly(st.Snapshot(), year, month, basis))
	}
}

// GET /api/reports/technician-earnings?year=2025&month=6  (fiyat görme yetkisi gerekir)
func TechnicianEarningsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := periodFromQuery(c)
		if err != nil {
			return err
		}
		return c.JSON(TechnicianEarnings(st.Snapshot(), year, month))
	}
}
