package clients

import (
	"fmt"
	"time"

	"protezlab-backend/internal/receivables"
	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/doctors/export  (fiyat görme yetkisi gerekir)
//
// Doktor bazında güncel bakiye dökümü. Bakiyeler dosya yazılırken
// anlık görüntüden türetilir.
func ExportBalancesHandler(st *store.Store) fiber.Handler {
	headers := []string{
		"Doktor", "Klinik", "Toplam Sipariş", "Teslim Edilen",
		"Toplam Borç", "Toplam Ödeme", "Güncel Bakiye",
	}

	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Doktor Bakiyeleri"
		f.SetSheetName(f.GetSheetName(0), sheet)

		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, d := range sn.Doctors {
			clinicName := "Bilinmiyor"
			if cl := sn.ClinicByID(d.ClinicID); cl != nil {
				clinicName = cl.Name
			}

			stats := receivables.ForDoctor(sn, d.ID)
			values := []interface{}{
				d.Name, clinicName, stats.TotalOrders, stats.DeliveredOrders,
				stats.TotalDebt, stats.TotalPayments, stats.CurrentBalance,
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

		filename := fmt.Sprintf("Doktor_Bakiyeleri_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
