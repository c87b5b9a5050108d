// Package reporting, seçilen (ay, yıl) dönemi için mali raporu ve teknisyen
// kazançlarını türetir. Raporlar kalıcı değildir; her istekte geçerli anlık
// görüntü üzerinden yeniden hesaplanır.
package reporting

import (
	"time"

	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"
	"protezlab-backend/internal/utils"
)

// Teknisyen komisyonu: dönemde tamamladığı her teslim edilmiş siparişin
// birim fiyatının %10'u.
const CommissionRate = 0.10

// RevenueBasis: gelirin hangi tarihe göre döneme sayılacağı. Kaynak sistem
// geliş tarihini kullanır (gelir girişte tanınır); teslim tarihi bazlı
// muhasebe isteyen laboratuvarlar için yapılandırılabilir.
type RevenueBasis string

const (
	RevenueBasisArrival  RevenueBasis = "arrival"
	RevenueBasisDelivery RevenueBasis = "delivery"
)

type FinancialSummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalRevenue  float64 `json:"total_revenue"`
	TotalSalaries float64 `json:"total_salaries"`
	MaterialCosts float64 `json:"material_costs"`
	NetProfit     float64 `json:"net_profit"`

	MonthlyOrders   int `json:"monthly_orders"`
	DeliveredOrders int `json:"delivered_orders"`
}

type TechnicianEarning struct {
	TechnicianID uint    `json:"technician_id"`
	Name         string  `json:"name"`
	BaseSalary   float64 `json:"base_salary"`
	Commission   float64 `json:"commission"`
	Total        float64 `json:"total"`
	OrderCount   int     `json:"order_count"`
}

func inPeriod(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// orderPeriodDate: siparişin döneme sayılmasında esas alınan tarih.
func orderPeriodDate(o *models.Order, basis RevenueBasis) time.Time {
	if basis == RevenueBasisDelivery && o.ActualDeliveryDate != nil {
		return *o.ActualDeliveryDate
	}
	return o.ArrivalDate
}

// Monthly: dönemin mali özeti.
//   - TotalRevenue: dönemdeki teslim edilmiş siparişlerin birim fiyat toplamı.
//     Protez tipi çözülemezse fiyat sıfır sayılır (fail-soft, bkz. pricing).
//   - TotalSalaries: aktif teknisyenlerin maaş toplamı. Dönemden bağımsız
//     güncel bir fotoğraftır, tarihsel maaş takibi yapılmaz.
//   - MaterialCosts: dönemdeki siparişlerin malzeme maliyeti toplamı.
func Monthly(sn *store.Snapshot, year, month int, basis RevenueBasis) FinancialSummary {
	sum := FinancialSummary{Year: year, Month: month}
	m := time.Month(month)

	for i := range sn.Orders {
		o := &sn.Orders[i]
		if !inPeriod(orderPeriodDate(o, basis), year, m) {
			continue
		}
		sum.MonthlyOrders++
		if o.Cost != nil {
			sum.MaterialCosts += *o.Cost
		}
		if o.Status != models.OrderStatusDelivered {
			continue
		}
		sum.DeliveredOrders++
		if pt := sn.ProsthesisTypeByID(o.ProsthesisTypeID); pt != nil {
			sum.TotalRevenue += pt.BasePrice
		}
	}

	for _, tech := range sn.Technicians {
		if tech.IsActive {
			sum.TotalSalaries += tech.Salary
		}
	}

	sum.TotalRevenue = utils.Round2(sum.TotalRevenue)
	sum.TotalSalaries = utils.Round2(sum.TotalSalaries)
	sum.MaterialCosts = utils.Round2(sum.MaterialCosts)
	sum.NetProfit = utils.Round2(sum.TotalRevenue - sum.TotalSalaries - sum.MaterialCosts)
	return sum
}

// TechnicianEarnings: teknisyen başına maaş + komisyon. Komisyon, dönem
// içinde tamamlanan (completionDate) ve teslim edilen siparişler üzerinden
// hesaplanır; gelir raporundan farklı tarih bazı kaynak sistemden gelir ve
// bilinçli olarak korunur.
func TechnicianEarnings(sn *store.Snapshot, year, month int) []TechnicianEarning {
	m := time.Month(month)
	out := make([]TechnicianEarning, 0, len(sn.Technicians))

	for _, tech := range sn.Technicians {
		e := TechnicianEarning{
			TechnicianID: tech.ID,
			Name:         tech.Name,
			BaseSalary:   tech.Salary,
		}

		for i := range sn.Orders {
			o := &sn.Orders[i]
			if o.TechnicianID == nil || *o.TechnicianID != tech.ID {
				continue
			}
			if o.Status != models.OrderStatusDelivered {
				continue
			}
			if o.CompletionDate == nil || !inPeriod(*o.CompletionDate, year, m) {
				continue
			}
			e.OrderCount++
			if pt := sn.ProsthesisTypeByID(o.ProsthesisTypeID); pt != nil {
				e.Commission += pt.BasePrice * CommissionRate
			}
		}

		e.Commission = utils.Round2(e.Commission)
		e.Total = utils.Round2(e.BaseSalary + e.Commission)
		out = append(out, e)
	}
	return out
}
