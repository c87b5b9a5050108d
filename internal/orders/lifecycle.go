package orders

import (
	"fmt"
	"time"

	"protezlab-backend/internal/models"
	"protezlab-backend/internal/pricing"
)

// Sipariş yaşam döngüsü: waiting → in-progress → completed → delivered.
// Teslim edilmemiş durumlar arasında serbest geçiş korunur (düzeltme
// senaryoları için); delivered terminaldir ve yalnızca teslim akışından
// girilebilir.

func IsValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusWaiting, models.OrderStatusInProgress,
		models.OrderStatusCompleted, models.OrderStatusDelivered:
		return true
	}
	return false
}

// ApplyStatus, teslim dışı bir durum geçişini sipariş üzerinde uygular.
// completed durumuna girişte tamamlanma anı damgalanır.
func ApplyStatus(o *models.Order, to models.OrderStatus, now time.Time) error {
	if !IsValidStatus(to) {
		return fmt.Errorf("geçersiz sipariş durumu: %s", to)
	}
	if o.Status == models.OrderStatusDelivered {
		return fmt.Errorf("teslim edilmiş sipariş değiştirilemez")
	}
	if to == models.OrderStatusDelivered {
		return fmt.Errorf("teslim, teslimat bilgileriyle yapılmalı")
	}

	if to == models.OrderStatusCompleted && o.Status != models.OrderStatusCompleted {
		t := now
		o.CompletionDate = &t
	}
	o.Status = to
	return nil
}

type DeliveryInput struct {
	UnitCount          int
	ActualDeliveryDate time.Time
	HasModel           bool
}

// FinalizeDelivery: siparişi delivered durumuna geçirir ve nihai fiyatı
// hesaplar. finalPrice, actualDeliveryDate ve hasModel bu noktada bir kez
// yazılır; teslim edilmiş sipariş yeniden finalize edilemez.
func FinalizeDelivery(o *models.Order, pt *models.ProsthesisType, in DeliveryInput) error {
	if o.Status == models.OrderStatusDelivered {
		return fmt.Errorf("sipariş zaten teslim edilmiş")
	}
	if in.UnitCount < 1 {
		return fmt.Errorf("teslim edilen adet en az 1 olmalı")
	}
	// Kısmi teslim temsil edilebilir ama sipariş edilenden fazlası olamaz.
	if in.UnitCount > o.UnitCount {
		return fmt.Errorf("teslim edilen adet (%d) sipariş edilen adedi (%d) aşamaz", in.UnitCount, o.UnitCount)
	}

	final := pricing.Finalize(pt, in.UnitCount, in.HasModel)

	o.Status = models.OrderStatusDelivered
	o.UnitCount = in.UnitCount
	o.FinalPrice = &final
	o.HasModel = in.HasModel
	d := in.ActualDeliveryDate
	o.ActualDeliveryDate = &d
	return nil
}
