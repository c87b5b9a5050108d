package orders

import (
	"regexp"
	"testing"
	"time"

	"protezlab-backend/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestApplyStatusStampsCompletionDate(t *testing.T) {
	now := time.Date(2025, time.March, 20, 14, 0, 0, 0, time.UTC)
	o := &models.Order{Status: models.OrderStatusInProgress}

	if err := ApplyStatus(o, models.OrderStatusCompleted, now); err != nil {
		t.Fatalf("geçiş başarısız: %v", err)
	}
	if o.CompletionDate == nil || !o.CompletionDate.Equal(now) {
		t.Errorf("completionDate damgalanmadı: %v", o.CompletionDate)
	}
}

func TestApplyStatusPermissiveBetweenNonTerminal(t *testing.T) {
	// Düzeltme senaryosu: completed'dan in-progress'e dönüş serbesttir.
	o := &models.Order{Status: models.OrderStatusCompleted}
	if err := ApplyStatus(o, models.OrderStatusInProgress, time.Now()); err != nil {
		t.Errorf("teslim dışı durumlar arası geçiş serbest olmalı: %v", err)
	}
	if o.Status != models.OrderStatusInProgress {
		t.Errorf("durum güncellenmedi: %s", o.Status)
	}
}

func TestApplyStatusRejectsDeliveredTarget(t *testing.T) {
	o := &models.Order{Status: models.OrderStatusCompleted}
	if err := ApplyStatus(o, models.OrderStatusDelivered, time.Now()); err == nil {
		t.Error("delivered durumuna düz geçiş reddedilmeli")
	}
}

func TestApplyStatusDeliveredIsTerminal(t *testing.T) {
	o := &models.Order{Status: models.OrderStatusDelivered}
	if err := ApplyStatus(o, models.OrderStatusWaiting, time.Now()); err == nil {
		t.Error("teslim edilmiş sipariş değiştirilememeli")
	}
}

func TestApplyStatusInvalidStatus(t *testing.T) {
	o := &models.Order{Status: models.OrderStatusWaiting}
	if err := ApplyStatus(o, "shipped", time.Now()); err == nil {
		t.Error("geçersiz durum reddedilmeli")
	}
}

func TestFinalizeDelivery(t *testing.T) {
	pt := &models.ProsthesisType{BasePrice: 500, ModelPrice: f64(150)}
	day := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)

	o := &models.Order{Status: models.OrderStatusCompleted, UnitCount: 3, TotalPrice: 1500}
	err := FinalizeDelivery(o, pt, DeliveryInput{UnitCount: 2, ActualDeliveryDate: day, HasModel: true})
	if err != nil {
		t.Fatalf("teslim başarısız: %v", err)
	}

	if o.Status != models.OrderStatusDelivered {
		t.Errorf("durum delivered olmalı: %s", o.Status)
	}
	if o.FinalPrice == nil || *o.FinalPrice != 1150 {
		t.Errorf("finalPrice = %v, beklenen 1150", o.FinalPrice)
	}
	if o.UnitCount != 2 {
		t.Errorf("kısmi teslim adedi yazılmadı: %d", o.UnitCount)
	}
	if !o.HasModel {
		t.Error("hasModel yazılmadı")
	}
	if o.ActualDeliveryDate == nil || !o.ActualDeliveryDate.Equal(day) {
		t.Errorf("actualDeliveryDate yazılmadı: %v", o.ActualDeliveryDate)
	}
}

func TestFinalizeDeliveryUnitCountBound(t *testing.T) {
	pt := &models.ProsthesisType{BasePrice: 500}
	o := &models.Order{Status: models.OrderStatusCompleted, UnitCount: 2}

	err := FinalizeDelivery(o, pt, DeliveryInput{UnitCount: 3, ActualDeliveryDate: time.Now()})
	if err == nil {
		t.Error("sipariş edilenden fazla teslim reddedilmeli")
	}
	if o.Status == models.OrderStatusDelivered {
		t.Error("başarısız teslim durumu değiştirmemeli")
	}
}

func TestFinalizeDeliveryWriteOnce(t *testing.T) {
	pt := &models.ProsthesisType{BasePrice: 500}
	o := &models.Order{Status: models.OrderStatusCompleted, UnitCount: 2}

	if err := FinalizeDelivery(o, pt, DeliveryInput{UnitCount: 2, ActualDeliveryDate: time.Now()}); err != nil {
		t.Fatal(err)
	}
	firstPrice := *o.FinalPrice
	firstDate := *o.ActualDeliveryDate

	// İkinci finalize reddedilir; alanlar bir kez yazılır.
	err := FinalizeDelivery(o, pt, DeliveryInput{UnitCount: 1, ActualDeliveryDate: time.Now().Add(24 * time.Hour), HasModel: true})
	if err == nil {
		t.Fatal("teslim edilmiş sipariş yeniden finalize edilememeli")
	}
	if *o.FinalPrice != firstPrice || !o.ActualDeliveryDate.Equal(firstDate) {
		t.Error("başarısız finalize alanları değiştirmemeli")
	}
}

func TestFinalizeDeliveryFailSoftOnMissingType(t *testing.T) {
	o := &models.Order{Status: models.OrderStatusCompleted, UnitCount: 1}
	if err := FinalizeDelivery(o, nil, DeliveryInput{UnitCount: 1, ActualDeliveryDate: time.Now()}); err != nil {
		t.Fatalf("eksik protez tipi teslimi engellememeli: %v", err)
	}
	if o.FinalPrice == nil || *o.FinalPrice != 0 {
		t.Errorf("eksik tip için fiyat 0 olmalı: %v", o.FinalPrice)
	}
}

func TestGenerateBarcodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^BL\d{13,}\d{3}$`)
	for i := 0; i < 20; i++ {
		code := GenerateBarcode()
		if !re.MatchString(code) {
			t.Fatalf("barkod formatı beklenmedik: %s", code)
		}
	}
}
