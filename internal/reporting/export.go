package reporting

import (
	"fmt"

	"protezlab-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/financial/export?year=2025&month=6  (fiyat görme yetkisi gerekir)
//
// İki sayfalı Excel raporu: "Mali Özet" ve "Teknisyen Kazançları".
func ExportFinancialHandler(st *store.Store, basis RevenueBasis) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := periodFromQuery(c)
		if err != nil {
			return err
		}

		sn := st.Snapshot()
		summary := Monthly(sn, year, month, basis)
		earnings := TechnicianEarnings(sn, year, month)

		f := excelize.NewFile()
		defer f.Close()

		const summarySheet = "Mali Özet"
		f.SetSheetName(f.GetSheetName(0), summarySheet)

		summaryRows := [][]interface{}{
			{"Dönem", fmt.Sprintf("%02d/%d", month, year)},
			{"Toplam Gelir", summary.TotalRevenue},
			{"Toplam Maaş", summary.TotalSalaries},
			{"Malzeme Giderleri", summary.MaterialCosts},
			{"Net Kâr", summary.NetProfit},
			{"Aylık Sipariş", summary.MonthlyOrders},
			{"Teslim Edilen", summary.DeliveredOrders},
		}
		for row, values := range summaryRows {
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+1)
				f.SetCellValue(summarySheet, cell, v)
			}
		}

		const earningsSheet = "Teknisyen Kazançları"
		if _, err := f.NewSheet(earningsSheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		headers := []string{"Teknisyen", "Maaş", "Komisyon", "Toplam", "Teslim Edilen Sipariş"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(earningsSheet, cell, h)
		}
		for row, e := range earnings {
			values := []interface{}{e.Name, e.BaseSalary, e.Commission, e.Total, e.OrderCount}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(earningsSheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("Mali_Rapor_%d_%02d.xlsx", year, month)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
