package orders

import (
	"fmt"
	"log"
	"strings"
	"time"

	"protezlab-backend/internal/audit"
	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/keymap"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/pricing"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	PatientName          string `json:"patient_name" validate:"required"`
	DoctorID             uint   `json:"doctor_id" validate:"required"`
	ProsthesisTypeID     uint   `json:"prosthesis_type_id" validate:"required"`
	TechnicianID         *uint  `json:"technician_id"`
	ArrivalDate          string `json:"arrival_date" validate:"required"`  // "2006-01-02"
	DeliveryDate         string `json:"delivery_date" validate:"required"` // planlanan
	UnitCount            int    `json:"unit_count" validate:"required,min=1"`
	Notes                string `json:"notes"`
	IsDigitalMeasurement bool   `json:"is_digital_measurement"`
	IsManualMeasurement  bool   `json:"is_manual_measurement"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type DeliverOrderRequest struct {
	UnitCount          int    `json:"unit_count" validate:"required,min=1"`
	ActualDeliveryDate string `json:"actual_delivery_date" validate:"required"`
	HasModel           bool   `json:"has_model"`
}

type SetDiscountRequest struct {
	DiscountAmount float64 `json:"discount_amount" validate:"min=0"`
}

type OrderResponse struct {
	ID                 uint               `json:"id"`
	Barcode            string             `json:"barcode"`
	PatientName        string             `json:"patient_name"`
	DoctorID           uint               `json:"doctor_id"`
	DoctorName         string             `json:"doctor_name"`
	ProsthesisTypeID   uint               `json:"prosthesis_type_id"`
	ProsthesisTypeName string             `json:"prosthesis_type_name"`
	Status             models.OrderStatus `json:"status"`
	TechnicianID       *uint              `json:"technician_id"`
	ArrivalDate        string             `json:"arrival_date"`
	DeliveryDate       string             `json:"delivery_date"`
	CompletionDate     *string            `json:"completion_date"`
	ActualDeliveryDate *string            `json:"actual_delivery_date"`
	UnitCount          int                `json:"unit_count"`
	HasModel           bool               `json:"has_model"`
	IsPaid             bool               `json:"is_paid"`
	Notes              string             `json:"notes,omitempty"`

	// Fiyat alanları can_view_prices yetkisi yoksa hiç dönmez.
	TotalPrice     *float64 `json:"total_price,omitempty"`
	FinalPrice     *float64 `json:"final_price,omitempty"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`

	// İndirim düşülmüş fiili alacak.
	NetAmount *float64 `json:"net_amount,omitempty"`
}

const dateLayout = "2006-01-02"

func toResponse(o *models.Order, sn *store.Snapshot, showPrices bool) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		Barcode:          o.Barcode,
		PatientName:      o.PatientName,
		DoctorID:         o.DoctorID,
		DoctorName:       "Bilinmiyor",
		ProsthesisTypeID: o.ProsthesisTypeID,
		ProsthesisTypeName: "Bilinmiyor",
		Status:           o.Status,
		TechnicianID:     o.TechnicianID,
		ArrivalDate:      o.ArrivalDate.Format(dateLayout),
		DeliveryDate:     o.DeliveryDate.Format(dateLayout),
		UnitCount:        o.UnitCount,
		HasModel:         o.HasModel,
		IsPaid:           o.IsPaid,
		Notes:            o.Notes,
	}

	// Çözülemeyen FK'ler hata değil "Bilinmiyor" olarak işlenir.
	if d := sn.DoctorByID(o.DoctorID); d != nil {
		resp.DoctorName = d.Name
	}
	if pt := sn.ProsthesisTypeByID(o.ProsthesisTypeID); pt != nil {
		resp.ProsthesisTypeName = pt.Name
	}

	if o.CompletionDate != nil {
		s := o.CompletionDate.Format(dateLayout)
		resp.CompletionDate = &s
	}
	if o.ActualDeliveryDate != nil {
		s := o.ActualDeliveryDate.Format(dateLayout)
		resp.ActualDeliveryDate = &s
	}

	if showPrices {
		total := o.TotalPrice
		resp.TotalPrice = &total
		resp.FinalPrice = o.FinalPrice
		resp.DiscountAmount = o.DiscountAmount
		net := pricing.EffectiveReceivable(o)
		resp.NetAmount = &net
	}

	return resp
}

// POST /api/orders  (admin, teknisyen)
func CreateOrderHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		arrival, err := time.Parse(dateLayout, body.ArrivalDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "arrival_date formatı 'YYYY-MM-DD' olmalı")
		}
		delivery, err := time.Parse(dateLayout, body.DeliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "delivery_date formatı 'YYYY-MM-DD' olmalı")
		}

		// FK'ler oluşturma anında var olmak zorunda.
		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ?", body.DoctorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Doktor bulunamadı")
		}
		var pt models.ProsthesisType
		if err := database.DB.First(&pt, "id = ?", body.ProsthesisTypeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Protez tipi bulunamadı")
		}
		if body.TechnicianID != nil {
			var tech models.Technician
			if err := database.DB.First(&tech, "id = ?", *body.TechnicianID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Teknisyen bulunamadı")
			}
		}

		order := models.Order{
			Barcode:              GenerateBarcode(),
			PatientName:          strings.TrimSpace(body.PatientName),
			DoctorID:             body.DoctorID,
			ProsthesisTypeID:     body.ProsthesisTypeID,
			TechnicianID:         body.TechnicianID,
			Status:               models.OrderStatusWaiting,
			ArrivalDate:          arrival,
			DeliveryDate:         delivery,
			UnitCount:            body.UnitCount,
			TotalPrice:           pricing.Quote(&pt, body.UnitCount),
			Notes:                body.Notes,
			IsDigitalMeasurement: body.IsDigitalMeasurement,
			IsManualMeasurement:  body.IsManualMeasurement,
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaydedilemedi")
		}

		// Onay geldikten sonra anlık görüntüye işle.
		st.ApplyOrder(order)

		userID, userName := auth.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sipariş oluşturuldu: %s (%s)", order.PatientName, order.Barcode),
			After:       orderAuditData(&order),
		}); logErr != nil {
			log.Println(logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&order, st.Snapshot(), auth.CanViewPrices(c)))
	}
}

// GET /api/orders?status=waiting&doctor_id=3&search=...
func ListOrdersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		status := c.Query("status")
		search := strings.ToLower(c.Query("search"))

		var doctorID uint
		if v := c.Query("doctor_id"); v != "" {
			if _, err := fmt.Sscan(v, &doctorID); err != nil || doctorID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "doctor_id geçersiz")
			}
		}

		showPrices := auth.CanViewPrices(c)
		resp := make([]OrderResponse, 0, len(sn.Orders))
		for i := range sn.Orders {
			o := &sn.Orders[i]
			if status != "" && string(o.Status) != status {
				continue
			}
			if doctorID != 0 && o.DoctorID != doctorID {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(o.PatientName), search) &&
				!strings.Contains(strings.ToLower(o.Barcode), search) {
				continue
			}
			resp = append(resp, toResponse(o, sn, showPrices))
		}

		return c.JSON(resp)
	}
}

// GET /api/orders/:id
func GetOrderHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		sn := st.Snapshot()
		o := sn.OrderByID(id)
		if o == nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(toResponse(o, sn, auth.CanViewPrices(c)))
	}
}

// PUT /api/orders/:id/status  (admin, teknisyen)
//
// Teslim dışı durum geçişleri; teslim PUT /orders/:id/deliver'dan yapılır.
func UpdateOrderStatusHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		before := orderAuditData(&order)
		prevStatus := order.Status

		if err := ApplyStatus(&order, body.Status, time.Now()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		updates := map[string]interface{}{"status": order.Status}
		if order.CompletionDate != nil {
			updates["completion_date"] = order.CompletionDate
		}
		if err := database.DB.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		st.ApplyOrder(order)

		userID, userName := auth.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Durum değişti: %s -> %s (%s)", prevStatus, order.Status, order.Barcode),
			Before:      before,
			After:       orderAuditData(&order),
		}); logErr != nil {
			log.Println(logErr)
		}

		return c.JSON(toResponse(&order, st.Snapshot(), auth.CanViewPrices(c)))
	}
}

// PUT /api/orders/:id/deliver  (admin, teknisyen)
//
// Teslim: finalPrice, actualDeliveryDate ve hasModel burada bir kez yazılır.
func DeliverOrderHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body DeliverOrderRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		actualDate, err := time.Parse(dateLayout, body.ActualDeliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "actual_delivery_date formatı 'YYYY-MM-DD' olmalı")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		before := orderAuditData(&order)

		// Protez tipi silinmişse fiyat sıfır hesaplanır ama teslim engellenmez.
		pt := st.Snapshot().ProsthesisTypeByID(order.ProsthesisTypeID)

		if err := FinalizeDelivery(&order, pt, DeliveryInput{
			UnitCount:          body.UnitCount,
			ActualDeliveryDate: actualDate,
			HasModel:           body.HasModel,
		}); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		updates := map[string]interface{}{
			"status":               order.Status,
			"unit_count":           order.UnitCount,
			"final_price":          order.FinalPrice,
			"has_model":            order.HasModel,
			"actual_delivery_date": order.ActualDeliveryDate,
		}
		if err := database.DB.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslim kaydedilemedi")
		}

		st.ApplyOrder(order)

		userID, userName := auth.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Sipariş teslim edildi: %s (%d adet)", order.Barcode, order.UnitCount),
			Before:      before,
			After:       orderAuditData(&order),
		}); logErr != nil {
			log.Println(logErr)
		}

		return c.JSON(toResponse(&order, st.Snapshot(), auth.CanViewPrices(c)))
	}
}

// PUT /api/orders/:id/discount  (admin, muhasebeci)
//
// İndirim finalPrice'ı değiştirmez; alacak hesabında düşülür. Sınır burada
// uygulanır: indirim nihai fiyatı aşamaz.
func SetDiscountHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body SetDiscountRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if order.Status != models.OrderStatusDelivered || order.FinalPrice == nil {
			return fiber.NewError(fiber.StatusBadRequest, "İndirim sadece teslim edilmiş siparişe uygulanabilir")
		}

		before := orderAuditData(&order)

		discount := pricing.ClampDiscount(body.DiscountAmount, *order.FinalPrice)
		order.DiscountAmount = &discount

		if err := database.DB.Model(&models.Order{}).Where("id = ?", id).
			Update("discount_amount", discount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İndirim kaydedilemedi")
		}

		st.ApplyOrder(order)

		userID, userName := auth.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("İndirim uygulandı: %.2f TL (%s)", discount, order.Barcode),
			Before:      before,
			After:       orderAuditData(&order),
		}); logErr != nil {
			log.Println(logErr)
		}

		return c.JSON(toResponse(&order, st.Snapshot(), auth.CanViewPrices(c)))
	}
}

// PATCH /api/orders/:id  (admin, teknisyen)
//
// Kısmi güncelleme. Eski istemciler alan adlarını camelCase gönderir;
// anahtarlar snake_case'e çevrilip izin listesinden geçirilir. Fiyat ve
// yaşam döngüsü alanları bu uçtan değiştirilemez.
func PatchOrderHandler(st *store.Store) fiber.Handler {
	allowed := map[string]bool{
		"patient_name":           true,
		"technician_id":          true,
		"notes":                  true,
		"delivery_date":          true,
		"is_paid":                true,
		"cost":                   true,
		"is_digital_measurement": true,
		"is_manual_measurement":  true,
	}

	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var raw map[string]any
		if err := c.BodyParser(&raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		snaked, _ := keymap.ToSnakeKeys(raw).(map[string]any)
		updates := make(map[string]interface{}, len(snaked))
		for k, v := range snaked {
			if !allowed[k] {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("'%s' alanı bu uçtan güncellenemez", k))
			}
			if k == "delivery_date" {
				s, ok := v.(string)
				if !ok {
					return fiber.NewError(fiber.StatusBadRequest, "delivery_date geçersiz")
				}
				d, err := time.Parse(dateLayout, s)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "delivery_date formatı 'YYYY-MM-DD' olmalı")
				}
				updates[k] = d
				continue
			}
			updates[k] = v
		}

		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Güncellenecek alan yok")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		before := orderAuditData(&order)

		if err := database.DB.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş okunamadı")
		}

		st.ApplyOrder(order)

		userID, userName := auth.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Sipariş güncellendi: %s", order.Barcode),
			Before:      before,
			After:       raw,
		}); logErr != nil {
			log.Println(logErr)
		}

		return c.JSON(toResponse(&order, st.Snapshot(), auth.CanViewPrices(c)))
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
	}
	return id, nil
}

func orderAuditData(o *models.Order) map[string]interface{} {
	data := map[string]interface{}{
		"id":           o.ID,
		"barcode":      o.Barcode,
		"patient_name": o.PatientName,
		"doctor_id":    o.DoctorID,
		"status":       string(o.Status),
		"unit_count":   o.UnitCount,
		"total_price":  o.TotalPrice,
		"is_paid":      o.IsPaid,
	}
	if o.FinalPrice != nil {
		data["final_price"] = *o.FinalPrice
	}
	if o.DiscountAmount != nil {
		data["discount_amount"] = *o.DiscountAmount
	}
	return data
}
