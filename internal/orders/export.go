package orders

import (
	"fmt"
	"time"

	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func statusText(s models.OrderStatus) string {
	switch s {
	case models.OrderStatusWaiting:
		return "Bekliyor"
	case models.OrderStatusInProgress:
		return "Devam Ediyor"
	case models.OrderStatusCompleted:
		return "Tamamlandı"
	case models.OrderStatusDelivered:
		return "Teslim Edildi"
	}
	return string(s)
}

// GET /api/orders/export
//
// Sipariş listesini Excel olarak indirir. Fiyat kolonları yetkisiz
// kullanıcıya "***" olarak yazılır.
func ExportOrdersHandler(st *store.Store) fiber.Handler {
	headers := []string{
		"Barkod", "Hasta", "Doktor", "Protez Tipi", "Adet",
		"Geliş Tarihi", "Teslim Tarihi", "Model",
		"Birim Fiyat", "Toplam Fiyat", "İndirim", "Durum",
	}

	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()
		showPrices := auth.CanViewPrices(c)

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Siparişler"
		f.SetSheetName(f.GetSheetName(0), sheet)

		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, o := range sn.Orders {
			doctorName := "Bilinmiyor"
			if d := sn.DoctorByID(o.DoctorID); d != nil {
				doctorName = d.Name
			}
			typeName := "Bilinmiyor"
			var basePrice float64
			if pt := sn.ProsthesisTypeByID(o.ProsthesisTypeID); pt != nil {
				typeName = pt.Name
				basePrice = pt.BasePrice
			}

			model := "Hayır"
			if o.HasModel {
				model = "Evet"
			}

			price := o.TotalPrice
			if o.FinalPrice != nil {
				price = *o.FinalPrice
			}
			var discount float64
			if o.DiscountAmount != nil {
				discount = *o.DiscountAmount
			}

			values := []interface{}{
				o.Barcode, o.PatientName, doctorName, typeName, o.UnitCount,
				o.ArrivalDate.Format(dateLayout), o.DeliveryDate.Format(dateLayout), model,
				basePrice, price, discount, statusText(o.Status),
			}
			if !showPrices {
				values[8], values[9], values[10] = "***", "***", "***"
			}

			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("Siparisler_%s.xlsx", time.Now().Format(dateLayout))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
