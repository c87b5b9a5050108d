// Package pricing, sipariş fiyatını yaşam döngüsünün iki noktasında hesaplar:
// oluşturma anındaki teklif ve teslim anındaki nihai fiyat.
//
// Protez tipi çözülemezse (silinmiş/eksik kayıt) fiyatlar sıfır kabul edilir.
// Bu bilinçli bir politika: eksik veri siparişin görüntülenmesini ve teslimini
// engellemez, fark muhasebe tarafında elle düzeltilir.
package pricing

import (
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/utils"
)

// Quote: oluşturma anındaki teklif. Model ücreti dahil edilmez çünkü modelin
// teslim edilip edilmeyeceği henüz bilinmez.
func Quote(pt *models.ProsthesisType, unitCount int) float64 {
	if pt == nil || unitCount <= 0 {
		return 0
	}
	return utils.Round2(pt.BasePrice * float64(unitCount))
}

// Finalize: teslim anındaki nihai fiyat. Model ücreti adetle çarpılmaz,
// sadece model teslim edildiyse bir kez eklenir.
func Finalize(pt *models.ProsthesisType, deliveredUnits int, hasModel bool) float64 {
	if pt == nil {
		return 0
	}
	total := pt.BasePrice * float64(deliveredUnits)
	if hasModel && pt.ModelPrice != nil {
		total += *pt.ModelPrice
	}
	return utils.Round2(total)
}

// EffectiveReceivable: doktorun bu sipariş için fiilen borçlandığı tutar.
// İndirim finalPrice'ı değiştirmez, alacaktan düşülür. FinalPrice yoksa
// (henüz teslim edilmemiş sipariş) teklif fiyatı esas alınır.
func EffectiveReceivable(o *models.Order) float64 {
	price := o.TotalPrice
	if o.FinalPrice != nil {
		price = *o.FinalPrice
	}
	if o.DiscountAmount != nil {
		price -= *o.DiscountAmount
	}
	if price < 0 {
		price = 0
	}
	return utils.Round2(price)
}

// ClampDiscount: indirim nihai fiyatı aşamaz ve negatif olamaz.
func ClampDiscount(discount, finalPrice float64) float64 {
	if discount < 0 {
		return 0
	}
	if discount > finalPrice {
		return finalPrice
	}
	return utils.Round2(discount)
}
