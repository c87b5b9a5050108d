package receivables

import (
	"reflect"
	"testing"

	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"
)

func f64(v float64) *float64 { return &v }

func snapshotWithDoctor() *store.Snapshot {
	return &store.Snapshot{
		Clinics: []models.Clinic{{ID: 1, Name: "Dent Klinik"}},
		Doctors: []models.Doctor{
			{ID: 10, ClinicID: 1, Name: "Dr. Ayşe"},
			{ID: 11, ClinicID: 1, Name: "Dr. Mehmet"},
		},
		Orders: []models.Order{
			{ID: 1, DoctorID: 10, Status: models.OrderStatusDelivered, TotalPrice: 900, FinalPrice: f64(1000)},
			{ID: 2, DoctorID: 10, Status: models.OrderStatusDelivered, TotalPrice: 800},
			{ID: 3, DoctorID: 10, Status: models.OrderStatusWaiting, TotalPrice: 600},
			{ID: 4, DoctorID: 11, Status: models.OrderStatusDelivered, TotalPrice: 400, FinalPrice: f64(400)},
		},
		Payments: []models.Payment{
			{ID: 1, DoctorID: 10, Amount: 500, Type: models.PaymentTypePayment},
		},
	}
}

func TestForDoctorScenario(t *testing.T) {
	// İki teslim edilmiş sipariş (1000 + 800) ve 500 ödeme.
	sn := snapshotWithDoctor()
	got := ForDoctor(sn, 10)

	want := DoctorStats{
		DoctorID:        10,
		TotalOrders:     3,
		DeliveredOrders: 2,
		TotalDebt:       1800,
		TotalPayments:   500,
		CurrentBalance:  1300,
	}
	if got != want {
		t.Errorf("ForDoctor = %+v, beklenen %+v", got, want)
	}
}

func TestForDoctorUsesFinalPriceOverQuote(t *testing.T) {
	sn := snapshotWithDoctor()
	got := ForDoctor(sn, 10)
	// Sipariş 1'in teklifi 900 ama finalPrice 1000; borçta 1000 kullanılmalı.
	if got.TotalDebt != 1800 {
		t.Errorf("finalPrice öncelikli olmalı, TotalDebt = %v", got.TotalDebt)
	}
}

func TestDebtTypePaymentsSumPositively(t *testing.T) {
	sn := snapshotWithDoctor()
	sn.Payments = append(sn.Payments, models.Payment{ID: 2, DoctorID: 10, Amount: 200, Type: models.PaymentTypeDebt})

	got := ForDoctor(sn, 10)
	if got.TotalPayments != 700 {
		t.Errorf("debt tipi ödeme de pozitif toplanmalı, TotalPayments = %v", got.TotalPayments)
	}
	if got.CurrentBalance != 1100 {
		t.Errorf("CurrentBalance = %v, beklenen 1100", got.CurrentBalance)
	}
}

func TestForDoctorIsIdempotent(t *testing.T) {
	sn := snapshotWithDoctor()
	first := ForDoctor(sn, 10)
	second := ForDoctor(sn, 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aynı görüntü için sonuç değişmemeli: %+v != %+v", first, second)
	}
}

func TestForDoctorUnknownDoctor(t *testing.T) {
	sn := snapshotWithDoctor()
	got := ForDoctor(sn, 999)
	if got.TotalOrders != 0 || got.CurrentBalance != 0 {
		t.Errorf("bilinmeyen doktor için sıfır istatistik dönmeli: %+v", got)
	}
}

func TestForClinicRollsUpDoctorBalances(t *testing.T) {
	sn := snapshotWithDoctor()
	got := ForClinic(sn, 1)

	// Dr. Ayşe: 1800 - 500 = 1300, Dr. Mehmet: 400 - 0 = 400.
	if got.DoctorCount != 2 {
		t.Errorf("DoctorCount = %d, beklenen 2", got.DoctorCount)
	}
	if got.TotalDebt != 1700 {
		t.Errorf("klinik borcu = %v, beklenen 1700", got.TotalDebt)
	}
}
