package pricing

import (
	"testing"

	"protezlab-backend/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestQuote(t *testing.T) {
	pt := &models.ProsthesisType{Name: "Zirkonyum Kron", BasePrice: 500, ModelPrice: f64(150)}

	if got := Quote(pt, 3); got != 1500 {
		t.Errorf("Quote(500, 3) = %v, beklenen 1500", got)
	}
	// Teklif model ücretini asla içermez.
	if got := Quote(pt, 1); got != 500 {
		t.Errorf("Quote(500, 1) = %v, beklenen 500", got)
	}
	if got := Quote(nil, 3); got != 0 {
		t.Errorf("çözülemeyen protez tipi için teklif 0 olmalı, got %v", got)
	}
	if got := Quote(pt, 0); got != 0 {
		t.Errorf("adet 0 için teklif 0 olmalı, got %v", got)
	}
}

func TestFinalize(t *testing.T) {
	pt := &models.ProsthesisType{BasePrice: 500, ModelPrice: f64(150)}

	cases := []struct {
		name     string
		pt       *models.ProsthesisType
		units    int
		hasModel bool
		want     float64
	}{
		{"model ile", pt, 2, true, 1150},
		{"model olmadan", pt, 2, false, 1000},
		{"model ücreti tanımsız", &models.ProsthesisType{BasePrice: 500}, 2, true, 1000},
		{"protez tipi silinmiş", nil, 2, true, 0},
		{"tek adet model ile", pt, 1, true, 650},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Finalize(c.pt, c.units, c.hasModel); got != c.want {
				t.Errorf("Finalize = %v, beklenen %v", got, c.want)
			}
		})
	}
}

func TestFinalizeModelFeeIsFlat(t *testing.T) {
	pt := &models.ProsthesisType{BasePrice: 100, ModelPrice: f64(50)}
	// 5 adet olsa da model ücreti bir kez eklenir.
	if got := Finalize(pt, 5, true); got != 550 {
		t.Errorf("model ücreti adetle çarpılmamalı: got %v, beklenen 550", got)
	}
}

func TestEffectiveReceivable(t *testing.T) {
	delivered := &models.Order{TotalPrice: 1500, FinalPrice: f64(1150), DiscountAmount: f64(150)}
	if got := EffectiveReceivable(delivered); got != 1000 {
		t.Errorf("indirimli alacak = %v, beklenen 1000", got)
	}

	waiting := &models.Order{TotalPrice: 1500}
	if got := EffectiveReceivable(waiting); got != 1500 {
		t.Errorf("teslim edilmemiş siparişte teklif esas alınmalı, got %v", got)
	}

	// İndirim alacağı asla negatife düşüremez.
	overdiscounted := &models.Order{TotalPrice: 500, FinalPrice: f64(500), DiscountAmount: f64(900)}
	if got := EffectiveReceivable(overdiscounted); got != 0 {
		t.Errorf("alacak negatif olamaz, got %v", got)
	}
}

func TestClampDiscount(t *testing.T) {
	if got := ClampDiscount(200, 1000); got != 200 {
		t.Errorf("geçerli indirim değişmemeli, got %v", got)
	}
	if got := ClampDiscount(1500, 1000); got != 1000 {
		t.Errorf("indirim nihai fiyata kırpılmalı, got %v", got)
	}
	if got := ClampDiscount(-50, 1000); got != 0 {
		t.Errorf("negatif indirim 0 olmalı, got %v", got)
	}
}
