package payments

import (
	"fmt"
	"log"
	"time"

	"protezlab-backend/internal/audit"
	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type CreatePaymentRequest struct {
	DoctorID      uint    `json:"doctor_id" validate:"required"`
	OrderID       *uint   `json:"order_id"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Date          string  `json:"date" validate:"required"`
	Type          string  `json:"type" validate:"required,oneof=payment debt"`
	Description   string  `json:"description"`
	InvoiceNumber string  `json:"invoice_number"`
}

type PaymentResponse struct {
	ID            uint    `json:"id"`
	DoctorID      uint    `json:"doctor_id"`
	DoctorName    string  `json:"doctor_name"`
	OrderID       *uint   `json:"order_id,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	InvoiceNumber string  `json:"invoice_number"`
}

// POST /api/payments  (admin, accountant)
func CreatePaymentHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz (YYYY-AA-GG)")
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ?", body.DoctorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Doktor bulunamadı")
		}
		if body.OrderID != nil {
			var order models.Order
			if err := database.DB.First(&order, "id = ?", *body.OrderID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş bulunamadı")
			}
			if order.DoctorID != body.DoctorID {
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş bu doktora ait değil")
			}
		}

		payment := models.Payment{
			DoctorID:      body.DoctorID,
			OrderID:       body.OrderID,
			Amount:        body.Amount,
			Date:          date,
			Type:          models.PaymentType(body.Type),
			Description:   body.Description,
			InvoiceNumber: body.InvoiceNumber,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme kaydedilemedi")
		}

		st.ApplyPayment(payment)

		userID, userName := auth.CurrentUser(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "payment",
			EntityID:    payment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s için %.2f TL %s kaydı", doctor.Name, payment.Amount, body.Type),
			After:       payment,
		}); err != nil {
			log.Println(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(payment, doctor.Name))
	}
}

// GET /api/payments?doctor_id=1  (admin, accountant)
func ListPaymentsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()

		var doctorID uint
		if v := c.Query("doctor_id"); v != "" {
			if _, err := fmt.Sscan(v, &doctorID); err != nil || doctorID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "doctor_id geçersiz")
			}
		}

		list := sn.Payments
		if doctorID != 0 {
			list = sn.PaymentsByDoctor(doctorID)
		}

		resp := make([]PaymentResponse, 0, len(list))
		for _, p := range list {
			name := "Bilinmiyor"
			if d := sn.DoctorByID(p.DoctorID); d != nil {
				name = d.Name
			}
			resp = append(resp, toResponse(p, name))
		}

		return c.JSON(resp)
	}
}

func toResponse(p models.Payment, doctorName string) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		DoctorID:      p.DoctorID,
		DoctorName:    doctorName,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Date:          p.Date.Format(dateLayout),
		Type:          string(p.Type),
		Description:   p.Description,
		InvoiceNumber: p.InvoiceNumber,
	}
}
