package technician

import (
	"strings"
	"time"

	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateTechnicianRequest struct {
	Name         string  `json:"name" validate:"required"`
	Username     string  `json:"username" validate:"required,min=3"`
	MonthlyQuota int     `json:"monthly_quota" validate:"gte=0"`
	Salary       float64 `json:"salary" validate:"gte=0"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Photo        string  `json:"photo"`
}

type UpdateTechnicianRequest struct {
	Name         *string  `json:"name"`
	MonthlyQuota *int     `json:"monthly_quota"`
	Salary       *float64 `json:"salary"`
	IsActive     *bool    `json:"is_active"`
	Phone        *string  `json:"phone"`
	Email        *string  `json:"email"`
	Photo        *string  `json:"photo"`
}

type TechnicianResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Username      string   `json:"username"`
	MonthlyQuota  int      `json:"monthly_quota"`
	CompletedJobs int      `json:"completed_jobs"`
	Salary        *float64 `json:"salary,omitempty"`
	IsActive      bool     `json:"is_active"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Photo         string   `json:"photo"`
}

// Bu ayki performans; sayılar teslim ve tamamlanma tarihlerinden türetilir,
// completed_jobs sayacından okunmaz.
type PerformanceResponse struct {
	TechnicianID   uint    `json:"technician_id"`
	Name           string  `json:"name"`
	MonthlyQuota   int     `json:"monthly_quota"`
	CompletedCount int     `json:"completed_count"`
	QuotaProgress  float64 `json:"quota_progress"`
	ActiveOrders   int     `json:"active_orders"`
}

// POST /api/technicians  (admin)
func CreateTechnicianHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTechnicianRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		username := strings.ToLower(strings.TrimSpace(body.Username))
		var existing models.Technician
		if err := database.DB.First(&existing, "username = ?", username).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten kullanılıyor")
		}

		tech := models.Technician{
			Name:         strings.TrimSpace(body.Name),
			Username:     username,
			MonthlyQuota: body.MonthlyQuota,
			Salary:       body.Salary,
			IsActive:     true,
			Phone:        body.Phone,
			Email:        body.Email,
			Photo:        body.Photo,
		}
		if err := database.DB.Create(&tech).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teknisyen oluşturulamadı")
		}

		st.ApplyTechnician(tech)

		return c.Status(fiber.StatusCreated).JSON(toResponse(tech, true))
	}
}

// GET /api/technicians
func ListTechniciansHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		showPrices := auth.CanViewPrices(c)

		resp := make([]TechnicianResponse, 0, len(sn.Technicians))
		for _, t := range sn.Technicians {
			resp = append(resp, toResponse(t, showPrices))
		}
		return c.JSON(resp)
	}
}

// PUT /api/technicians/:id  (admin)
func UpdateTechnicianHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tech models.Technician
		if err := database.DB.First(&tech, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Teknisyen bulunamadı")
		}

		var body UpdateTechnicianRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			tech.Name = name
		}
		if body.MonthlyQuota != nil {
			if *body.MonthlyQuota < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kota negatif olamaz")
			}
			tech.MonthlyQuota = *body.MonthlyQuota
		}
		if body.Salary != nil {
			if *body.Salary < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Maaş negatif olamaz")
			}
			tech.Salary = *body.Salary
		}
		if body.IsActive != nil {
			tech.IsActive = *body.IsActive
		}
		if body.Phone != nil {
			tech.Phone = *body.Phone
		}
		if body.Email != nil {
			tech.Email = *body.Email
		}
		if body.Photo != nil {
			tech.Photo = *body.Photo
		}

		if err := database.DB.Save(&tech).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teknisyen güncellenemedi")
		}

		st.ApplyTechnician(tech)

		return c.JSON(toResponse(tech, true))
	}
}

// GET /api/technicians/performance?year=2025&month=6
func PerformanceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month 1-12 arasında olmalı")
		}

		sn := st.Snapshot()

		completed := make(map[uint]int)
		active := make(map[uint]int)
		for _, o := range sn.Orders {
			if o.TechnicianID == nil {
				continue
			}
			tid := *o.TechnicianID
			switch o.Status {
			case models.OrderStatusWaiting, models.OrderStatusInProgress:
				active[tid]++
			default:
				if o.CompletionDate != nil &&
					o.CompletionDate.Year() == year &&
					int(o.CompletionDate.Month()) == month {
					completed[tid]++
				}
			}
		}

		resp := make([]PerformanceResponse, 0, len(sn.Technicians))
		for _, t := range sn.Technicians {
			if !t.IsActive {
				continue
			}
			item := PerformanceResponse{
				TechnicianID:   t.ID,
				Name:           t.Name,
				MonthlyQuota:   t.MonthlyQuota,
				CompletedCount: completed[t.ID],
				ActiveOrders:   active[t.ID],
			}
			if t.MonthlyQuota > 0 {
				item.QuotaProgress = float64(item.CompletedCount) / float64(t.MonthlyQuota)
			}
			resp = append(resp, item)
		}

		return c.JSON(resp)
	}
}

func toResponse(t models.Technician, showSalary bool) TechnicianResponse {
	resp := TechnicianResponse{
		ID:            t.ID,
		Name:          t.Name,
		Username:      t.Username,
		MonthlyQuota:  t.MonthlyQuota,
		CompletedJobs: t.CompletedJobs,
		IsActive:      t.IsActive,
		Phone:         t.Phone,
		Email:         t.Email,
		Photo:         t.Photo,
	}
	if showSalary {
		salary := t.Salary
		resp.Salary = &salary
	}
	return resp
}
