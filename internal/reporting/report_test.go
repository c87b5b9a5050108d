package reporting

import (
	"testing"
	"time"

	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"
)

func f64(v float64) *float64 { return &v }
func u(v uint) *uint         { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func reportSnapshot() *store.Snapshot {
	mar5 := date(2025, time.March, 5)
	mar20 := date(2025, time.March, 20)
	feb10 := date(2025, time.February, 10)

	return &store.Snapshot{
		ProsthesisTypes: []models.ProsthesisType{
			{ID: 1, Name: "Zirkonyum", BasePrice: 2000},
			{ID: 2, Name: "Kron", BasePrice: 500},
		},
		Technicians: []models.Technician{
			{ID: 1, Name: "Hasan", Salary: 10000, IsActive: true},
			{ID: 2, Name: "Kemal", Salary: 8000, IsActive: false},
		},
		Orders: []models.Order{
			// Mart döneminde teslim edilmiş, teknisyen 1 tarafından tamamlanmış.
			{
				ID: 1, ProsthesisTypeID: 1, TechnicianID: u(1),
				Status:      models.OrderStatusDelivered,
				ArrivalDate: mar5, CompletionDate: &mar20,
				ActualDeliveryDate: &mar20, Cost: f64(300),
			},
			// Mart'ta gelmiş ama henüz bekleyen sipariş: gelire girmez,
			// malzeme maliyetine girer.
			{
				ID: 2, ProsthesisTypeID: 2,
				Status:      models.OrderStatusWaiting,
				ArrivalDate: mar5, Cost: f64(100),
			},
			// Şubat siparişi: Mart raporuna hiç girmez.
			{
				ID: 3, ProsthesisTypeID: 2,
				Status:      models.OrderStatusDelivered,
				ArrivalDate: feb10, Cost: f64(50),
			},
		},
	}
}

func TestMonthlySummary(t *testing.T) {
	sn := reportSnapshot()
	got := Monthly(sn, 2025, 3, RevenueBasisArrival)

	if got.TotalRevenue != 2000 {
		t.Errorf("TotalRevenue = %v, beklenen 2000", got.TotalRevenue)
	}
	// Sadece aktif teknisyenlerin maaşı sayılır.
	if got.TotalSalaries != 10000 {
		t.Errorf("TotalSalaries = %v, beklenen 10000", got.TotalSalaries)
	}
	if got.MaterialCosts != 400 {
		t.Errorf("MaterialCosts = %v, beklenen 400", got.MaterialCosts)
	}
	if got.NetProfit != 2000-10000-400 {
		t.Errorf("NetProfit = %v, beklenen %v", got.NetProfit, 2000-10000-400.0)
	}
	if got.MonthlyOrders != 2 || got.DeliveredOrders != 1 {
		t.Errorf("sipariş sayıları yanlış: %+v", got)
	}
}

func TestMonthlyRevenueBasisDelivery(t *testing.T) {
	sn := reportSnapshot()
	// Sipariş 3 Şubat'ta gelmiş; teslim tarihi Mart'a çekilirse delivery
	// bazlı raporda Mart'a sayılmalı.
	mar1 := date(2025, time.March, 1)
	sn.Orders[2].ActualDeliveryDate = &mar1

	arrival := Monthly(sn, 2025, 3, RevenueBasisArrival)
	delivery := Monthly(sn, 2025, 3, RevenueBasisDelivery)

	if arrival.TotalRevenue != 2000 {
		t.Errorf("arrival bazlı gelir = %v, beklenen 2000", arrival.TotalRevenue)
	}
	if delivery.TotalRevenue != 2500 {
		t.Errorf("delivery bazlı gelir = %v, beklenen 2500", delivery.TotalRevenue)
	}
}

func TestMonthlyFailSoftOnMissingProsthesisType(t *testing.T) {
	sn := reportSnapshot()
	sn.Orders[0].ProsthesisTypeID = 999 // silinmiş tip

	got := Monthly(sn, 2025, 3, RevenueBasisArrival)
	if got.TotalRevenue != 0 {
		t.Errorf("çözülemeyen protez tipi sıfır sayılmalı, gelir = %v", got.TotalRevenue)
	}
	if got.DeliveredOrders != 1 {
		t.Errorf("sipariş yine de sayılmalı, DeliveredOrders = %d", got.DeliveredOrders)
	}
}

func TestTechnicianEarningsScenario(t *testing.T) {
	// Maaş 10000, dönemde birim fiyatı 2000 olan bir teslim → komisyon 200.
	sn := reportSnapshot()
	earnings := TechnicianEarnings(sn, 2025, 3)

	if len(earnings) != 2 {
		t.Fatalf("teknisyen sayısı = %d, beklenen 2", len(earnings))
	}

	hasan := earnings[0]
	if hasan.Commission != 200 {
		t.Errorf("komisyon = %v, beklenen 200", hasan.Commission)
	}
	if hasan.Total != 10200 {
		t.Errorf("toplam kazanç = %v, beklenen 10200", hasan.Total)
	}
	if hasan.OrderCount != 1 {
		t.Errorf("sipariş sayısı = %d, beklenen 1", hasan.OrderCount)
	}

	// Teknisyen 2'nin dönem içi teslimi yok: sadece maaş.
	kemal := earnings[1]
	if kemal.Commission != 0 || kemal.Total != 8000 {
		t.Errorf("işsiz teknisyen sadece maaş almalı: %+v", kemal)
	}
}

func TestTechnicianEarningsPeriodByCompletionDate(t *testing.T) {
	sn := reportSnapshot()
	// Tamamlama tarihi Şubat'a çekilirse Mart komisyonu düşmeli.
	feb := date(2025, time.February, 25)
	sn.Orders[0].CompletionDate = &feb

	earnings := TechnicianEarnings(sn, 2025, 3)
	if earnings[0].Commission != 0 {
		t.Errorf("dönem dışı tamamlama komisyon doğurmamalı: %v", earnings[0].Commission)
	}
}
