// Package receivables, doktor ve klinik bazında cari bakiyeyi türetir.
// Bakiye hiçbir zaman kayıtlı alan olarak okunmaz; her çağrıda geçerli
// anlık görüntü üzerinden yeniden hesaplanır. Aynı görüntü için sonuç
// her zaman aynıdır.
package receivables

import (
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"
	"protezlab-backend/internal/utils"
)

type DoctorStats struct {
	DoctorID        uint    `json:"doctor_id"`
	TotalOrders     int     `json:"total_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	TotalDebt       float64 `json:"total_debt"`
	TotalPayments   float64 `json:"total_payments"`
	CurrentBalance  float64 `json:"current_balance"`
}

type ClinicStats struct {
	ClinicID    uint    `json:"clinic_id"`
	DoctorCount int     `json:"doctor_count"`
	TotalDebt   float64 `json:"total_debt"`
}

// ForDoctor: doktorun teslim edilmiş siparişlerinden borç, ödemelerinden
// tahsilat türetir. Borç hesabında finalPrice, yoksa totalPrice esas alınır;
// indirim bu katmanda düşülmez, fiyat görünürlüğü olan katmanda uygulanır.
func ForDoctor(sn *store.Snapshot, doctorID uint) DoctorStats {
	stats := DoctorStats{DoctorID: doctorID}

	for _, o := range sn.OrdersByDoctor(doctorID) {
		stats.TotalOrders++
		if o.Status != models.OrderStatusDelivered {
			continue
		}
		stats.DeliveredOrders++
		price := o.TotalPrice
		if o.FinalPrice != nil {
			price = *o.FinalPrice
		}
		stats.TotalDebt += price
	}

	// Her iki ödeme tipi de pozitif toplanır; "debt" kayıtları elle girilen
	// borç düzeltmeleridir ve kaynak sistemdeki modelleme korunur.
	for _, p := range sn.PaymentsByDoctor(doctorID) {
		stats.TotalPayments += p.Amount
	}

	stats.TotalDebt = utils.Round2(stats.TotalDebt)
	stats.TotalPayments = utils.Round2(stats.TotalPayments)
	stats.CurrentBalance = utils.Round2(stats.TotalDebt - stats.TotalPayments)
	return stats
}

// ForClinic: kliniğe bağlı doktorların güncel bakiyelerinin toplamı.
func ForClinic(sn *store.Snapshot, clinicID uint) ClinicStats {
	stats := ClinicStats{ClinicID: clinicID}
	for _, d := range sn.DoctorsByClinic(clinicID) {
		stats.DoctorCount++
		stats.TotalDebt += ForDoctor(sn, d.ID).CurrentBalance
	}
	stats.TotalDebt = utils.Round2(stats.TotalDebt)
	return stats
}
