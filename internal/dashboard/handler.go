package dashboard

import (
	"time"

	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type scheduleOrder struct {
	ID           uint   `json:"id"`
	Barcode      string `json:"barcode"`
	PatientName  string `json:"patient_name"`
	DoctorName   string `json:"doctor_name"`
	Status       string `json:"status"`
	DeliveryDate string `json:"delivery_date"`
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// GET /api/dashboard
//
// Durum sayıları ve günün hareketleri. Fiyat içermediği için tüm roller
// erişebilir.
func SummaryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		now := time.Now()

		statusCounts := map[models.OrderStatus]int{
			models.OrderStatusWaiting:    0,
			models.OrderStatusInProgress: 0,
			models.OrderStatusCompleted:  0,
			models.OrderStatusDelivered:  0,
		}
		todayIncoming := 0
		todayDelivered := 0

		for i := range sn.Orders {
			o := &sn.Orders[i]
			statusCounts[o.Status]++
			if sameDay(o.ArrivalDate, now) {
				todayIncoming++
			}
			if o.ActualDeliveryDate != nil && sameDay(*o.ActualDeliveryDate, now) {
				todayDelivered++
			}
		}

		activeTechnicians := 0
		for _, t := range sn.Technicians {
			if t.IsActive {
				activeTechnicians++
			}
		}

		return c.JSON(fiber.Map{
			"status_counts":      statusCounts,
			"today_incoming":     todayIncoming,
			"today_delivered":    todayDelivered,
			"active_technicians": activeTechnicians,
			"total_orders":       len(sn.Orders),
			"doctor_count":       len(sn.Doctors),
			"clinic_count":       len(sn.Clinics),
		})
	}
}

// GET /api/dashboard/schedule
//
// Teslim planı: bugün teslim edilecekler, gecikmişler ve bu hafta
// teslim edilecekler. Teslim edilmiş siparişler plana girmez.
func ScheduleHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekEnd := today.AddDate(0, 0, 7)

		var dueToday, overdue, thisWeek []scheduleOrder
		for i := range sn.Orders {
			o := &sn.Orders[i]
			if o.Status == models.OrderStatusDelivered {
				continue
			}

			item := scheduleOrder{
				ID:           o.ID,
				Barcode:      o.Barcode,
				PatientName:  o.PatientName,
				DoctorName:   "Bilinmiyor",
				Status:       string(o.Status),
				DeliveryDate: o.DeliveryDate.Format(dateLayout),
			}
			if d := sn.DoctorByID(o.DoctorID); d != nil {
				item.DoctorName = d.Name
			}

			due := o.DeliveryDate
			switch {
			case sameDay(due, now):
				dueToday = append(dueToday, item)
			case due.Before(today):
				overdue = append(overdue, item)
			case due.Before(weekEnd):
				thisWeek = append(thisWeek, item)
			}
		}

		return c.JSON(fiber.Map{
			"due_today": dueToday,
			"overdue":   overdue,
			"this_week": thisWeek,
		})
	}
}
