package clients

import (
	"fmt"
	"strings"

	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/receivables"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateClinicRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type UpdateClinicRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

type CreateDoctorRequest struct {
	ClinicID uint   `json:"clinic_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UpdateDoctorRequest struct {
	ClinicID *uint   `json:"clinic_id"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type ClinicResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DoctorCount int    `json:"doctor_count"`

	// Türetilmiş bakiye; kayıtlı denormalize alanlar değil.
	TotalDebt *float64 `json:"total_debt,omitempty"`
}

type DoctorResponse struct {
	ID       uint   `json:"id"`
	ClinicID uint   `json:"clinic_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// POST /api/clinics  (admin)
func CreateClinicHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClinicRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		clinic := models.Clinic{
			Name:    strings.TrimSpace(body.Name),
			Address: body.Address,
			Phone:   body.Phone,
			Email:   body.Email,
		}
		if err := database.DB.Create(&clinic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klinik oluşturulamadı")
		}

		st.ApplyClinic(clinic)

		return c.Status(fiber.StatusCreated).JSON(ClinicResponse{
			ID: clinic.ID, Name: clinic.Name, Address: clinic.Address,
			Phone: clinic.Phone, Email: clinic.Email,
		})
	}
}

// GET /api/clinics
func ListClinicsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		showPrices := auth.CanViewPrices(c)

		resp := make([]ClinicResponse, 0, len(sn.Clinics))
		for _, cl := range sn.Clinics {
			item := ClinicResponse{
				ID: cl.ID, Name: cl.Name, Address: cl.Address,
				Phone: cl.Phone, Email: cl.Email,
			}
			stats := receivables.ForClinic(sn, cl.ID)
			item.DoctorCount = stats.DoctorCount
			if showPrices {
				debt := stats.TotalDebt
				item.TotalDebt = &debt
			}
			resp = append(resp, item)
		}

		return c.JSON(resp)
	}
}

// PUT /api/clinics/:id  (admin)
func UpdateClinicHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var clinic models.Clinic
		if err := database.DB.First(&clinic, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Klinik bulunamadı")
		}

		var body UpdateClinicRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			clinic.Name = name
		}
		if body.Address != nil {
			clinic.Address = *body.Address
		}
		if body.Phone != nil {
			clinic.Phone = *body.Phone
		}
		if body.Email != nil {
			clinic.Email = *body.Email
		}

		if err := database.DB.Save(&clinic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klinik güncellenemedi")
		}

		st.ApplyClinic(clinic)

		return c.JSON(ClinicResponse{
			ID: clinic.ID, Name: clinic.Name, Address: clinic.Address,
			Phone: clinic.Phone, Email: clinic.Email,
		})
	}
}

// POST /api/doctors  (admin)
func CreateDoctorHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDoctorRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		var clinic models.Clinic
		if err := database.DB.First(&clinic, "id = ?", body.ClinicID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Klinik bulunamadı")
		}

		doctor := models.Doctor{
			ClinicID: body.ClinicID,
			Name:     strings.TrimSpace(body.Name),
			Phone:    body.Phone,
			Email:    body.Email,
		}
		if err := database.DB.Create(&doctor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Doktor oluşturulamadı")
		}

		st.ApplyDoctor(doctor)

		return c.Status(fiber.StatusCreated).JSON(DoctorResponse{
			ID: doctor.ID, ClinicID: doctor.ClinicID, Name: doctor.Name,
			Phone: doctor.Phone, Email: doctor.Email,
		})
	}
}

// GET /api/doctors?clinic_id=1
func ListDoctorsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()

		var clinicID uint
		if v := c.Query("clinic_id"); v != "" {
			if _, err := fmt.Sscan(v, &clinicID); err != nil || clinicID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "clinic_id geçersiz")
			}
		}

		doctors := sn.Doctors
		if clinicID != 0 {
			doctors = sn.DoctorsByClinic(clinicID)
		}

		resp := make([]DoctorResponse, 0, len(doctors))
		for _, d := range doctors {
			resp = append(resp, DoctorResponse{
				ID: d.ID, ClinicID: d.ClinicID, Name: d.Name,
				Phone: d.Phone, Email: d.Email,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/doctors/:id  (admin)
func UpdateDoctorHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Doktor bulunamadı")
		}

		var body UpdateDoctorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.ClinicID != nil {
			var clinic models.Clinic
			if err := database.DB.First(&clinic, "id = ?", *body.ClinicID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Klinik bulunamadı")
			}
			doctor.ClinicID = *body.ClinicID
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			doctor.Name = name
		}
		if body.Phone != nil {
			doctor.Phone = *body.Phone
		}
		if body.Email != nil {
			doctor.Email = *body.Email
		}

		if err := database.DB.Save(&doctor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Doktor güncellenemedi")
		}

		st.ApplyDoctor(doctor)

		return c.JSON(DoctorResponse{
			ID: doctor.ID, ClinicID: doctor.ClinicID, Name: doctor.Name,
			Phone: doctor.Phone, Email: doctor.Email,
		})
	}
}

// GET /api/doctors/:id/stats
//
// Cari durum her çağrıda geçerli anlık görüntüden türetilir; kayıtlı
// bakiye alanları kullanılmaz.
func DoctorStatsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		sn := st.Snapshot()
		if sn.DoctorByID(id) == nil {
			return fiber.NewError(fiber.StatusNotFound, "Doktor bulunamadı")
		}

		stats := receivables.ForDoctor(sn, id)
		if !auth.CanViewPrices(c) {
			// Fiyat görme yetkisi olmayanlar sadece sipariş sayılarını görür.
			return c.JSON(fiber.Map{
				"doctor_id":        stats.DoctorID,
				"total_orders":     stats.TotalOrders,
				"delivered_orders": stats.DeliveredOrders,
			})
		}
		return c.JSON(stats)
	}
}

// GET /api/clinics/:id/stats
func ClinicStatsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		sn := st.Snapshot()
		if sn.ClinicByID(id) == nil {
			return fiber.NewError(fiber.StatusNotFound, "Klinik bulunamadı")
		}

		stats := receivables.ForClinic(sn, id)
		if !auth.CanViewPrices(c) {
			return c.JSON(fiber.Map{
				"clinic_id":    stats.ClinicID,
				"doctor_count": stats.DoctorCount,
			})
		}
		return c.JSON(stats)
	}
}
