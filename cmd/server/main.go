package main

import (
	"context"
	"log"
	"strings"

	"protezlab-backend/internal/audit"
	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/clients"
	"protezlab-backend/internal/config"
	"protezlab-backend/internal/dashboard"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/expense"
	"protezlab-backend/internal/health"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/orders"
	"protezlab-backend/internal/payments"
	"protezlab-backend/internal/prosthesis"
	"protezlab-backend/internal/reporting"
	"protezlab-backend/internal/store"
	"protezlab-backend/internal/technician"
	"protezlab-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	st := store.New(store.NewGormLoader(database.DB))
	if err := st.Reload(context.Background()); err != nil {
		// İlk yükleme başarısızsa boş görüntüyle açılmak yerine süreç durur.
		cat := database.Classify(err)
		log.Fatalf("[FATAL] Veriler yüklenemedi: %v (%s)", err, database.Describe(cat))
	}
	st.StartRefresher(context.Background(), cfg.RefreshInterval)

	basis := reporting.RevenueBasis(cfg.RevenueBasis)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/health", health.Handler(st, cfg.ProbeTimeout))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Klinik ve doktor yönetimi
	adminRoutes.Post("/clinics", clients.CreateClinicHandler(st))
	adminRoutes.Put("/clinics/:id", clients.UpdateClinicHandler(st))
	adminRoutes.Post("/doctors", clients.CreateDoctorHandler(st))
	adminRoutes.Put("/doctors/:id", clients.UpdateDoctorHandler(st))

	// Protez tipleri ve teknisyenler
	adminRoutes.Post("/prosthesis-types", prosthesis.CreateTypeHandler(st))
	adminRoutes.Put("/prosthesis-types/:id", prosthesis.UpdateTypeHandler(st))
	adminRoutes.Post("/technicians", technician.CreateTechnicianHandler(st))
	adminRoutes.Put("/technicians/:id", technician.UpdateTechnicianHandler(st))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", users.CreateUserHandler())
	adminRoutes.Get("/users", users.ListUsersHandler())
	adminRoutes.Put("/users/:id", users.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", users.DeleteUserHandler())

	// Gider silme sadece admin
	adminRoutes.Delete("/expenses/:id", expense.DeleteExpenseHandler(st))

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Sipariş okuma ve kayıt: tüm roller
	protected.Post("/orders", orders.CreateOrderHandler(st))
	protected.Get("/orders", orders.ListOrdersHandler(st))
	protected.Get("/orders/export", orders.ExportOrdersHandler(st))
	protected.Get("/orders/:id", orders.GetOrderHandler(st))
	protected.Patch("/orders/:id", orders.PatchOrderHandler(st))

	// Durum ve teslim değişiklikleri atölye tarafında kalır;
	// muhasebe sipariş durumunu sadece okur.
	workshop := protected.Group("")
	workshop.Use(auth.RequireRole(models.RoleAdmin, models.RoleTechnician))
	workshop.Put("/orders/:id/status", orders.UpdateOrderStatusHandler(st))
	workshop.Put("/orders/:id/deliver", orders.DeliverOrderHandler(st))

	// Referans listeleri: tüm roller (fiyatlar yetkiye göre maskelenir)
	protected.Get("/clinics", clients.ListClinicsHandler(st))
	protected.Get("/clinics/:id/stats", clients.ClinicStatsHandler(st))
	protected.Get("/doctors", clients.ListDoctorsHandler(st))
	protected.Get("/doctors/:id/stats", clients.DoctorStatsHandler(st))
	protected.Get("/prosthesis-types", prosthesis.ListTypesHandler(st))
	protected.Get("/technicians", technician.ListTechniciansHandler(st))
	protected.Get("/technicians/performance", technician.PerformanceHandler(st))

	// Dashboard ve teslim planı
	protected.Get("/dashboard", dashboard.SummaryHandler(st))
	protected.Get("/dashboard/schedule", dashboard.ScheduleHandler(st))

	// Mali kayıtlar: admin + muhasebe
	finance := protected.Group("")
	finance.Use(auth.RequireRole(models.RoleAdmin, models.RoleAccountant))

	finance.Post("/payments", payments.CreatePaymentHandler(st))
	finance.Get("/payments", payments.ListPaymentsHandler(st))
	finance.Put("/orders/:id/discount", orders.SetDiscountHandler(st))

	finance.Get("/expenses/categories", expense.CategoriesHandler())
	finance.Post("/expenses", expense.CreateExpenseHandler(st))
	finance.Get("/expenses", expense.ListExpensesHandler(st))
	finance.Get("/expenses/summary", expense.CategorySummaryHandler(st))
	finance.Put("/expenses/:id", expense.UpdateExpenseHandler(st))

	// Raporlar tamamen fiyat verisi içerir; rol yetmez, fiyat görme izni gerekir.
	reports := finance.Group("", auth.RequirePriceAccess())
	reports.Get("/reports/financial", reporting.FinancialSummaryHandler(st, basis))
	reports.Get("/reports/financial/export", reporting.ExportFinancialHandler(st, basis))
	reports.Get("/reports/technician-earnings", reporting.TechnicianEarningsHandler(st))
	reports.Get("/doctors/export", clients.ExportBalancesHandler(st))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
