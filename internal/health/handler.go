package health

import (
	"time"

	"protezlab-backend/internal/database"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /health  (kimlik doğrulaması gerektirmez)
//
// Veritabanına zaman aşımı sınırlı bir bağlantı testi yapar ve entity
// store'un en son ne zaman yüklendiğini raporlar.
func Handler(st *store.Store, probeTimeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		sn := st.Snapshot()
		if !sn.LoadedAt.IsZero() {
			resp["store_loaded_at"] = sn.LoadedAt.Format(time.RFC3339)
		}

		if err := database.Probe(c.Context(), probeTimeout); err != nil {
			cat := database.Classify(err)
			resp["status"] = "degraded"
			resp["database"] = fiber.Map{
				"ok":       false,
				"category": cat,
				"message":  database.Describe(cat),
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}

		resp["database"] = fiber.Map{"ok": true}
		return c.JSON(resp)
	}
}
