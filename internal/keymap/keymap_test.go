package keymap

import (
	"reflect"
	"testing"
)

func TestToSnakeKey(t *testing.T) {
	cases := map[string]string{
		"actualDeliveryDate": "actual_delivery_date",
		"doctorId":           "doctor_id",
		"name":               "name",
		"hasModel":           "has_model",
		"isPaid":             "is_paid",
	}
	for in, want := range cases {
		if got := ToSnakeKey(in); got != want {
			t.Errorf("ToSnakeKey(%q) = %q, beklenen %q", in, got, want)
		}
	}
}

func TestToCamelKey(t *testing.T) {
	cases := map[string]string{
		"actual_delivery_date": "actualDeliveryDate",
		"doctor_id":            "doctorId",
		"name":                 "name",
		"can_view_prices":      "canViewPrices",
	}
	for in, want := range cases {
		if got := ToCamelKey(in); got != want {
			t.Errorf("ToCamelKey(%q) = %q, beklenen %q", in, got, want)
		}
	}
}

func TestRoundTripNestedGraph(t *testing.T) {
	snake := map[string]any{
		"patient_name": "Ali Veli",
		"unit_count":   float64(3),
		"has_model":    true,
		"orders": []any{
			map[string]any{
				"final_price":          float64(1150),
				"actual_delivery_date": "2025-03-01",
			},
		},
	}

	camel := ToCamelKeys(snake)
	back := ToSnakeKeys(camel)
	if !reflect.DeepEqual(back, snake) {
		t.Errorf("snake->camel->snake kayıplı: %v != %v", back, snake)
	}

	camelOrig := map[string]any{
		"doctorId": float64(7),
		"payments": []any{
			map[string]any{"invoiceNumber": "F-12"},
		},
	}
	if got := ToCamelKeys(ToSnakeKeys(camelOrig)); !reflect.DeepEqual(got, camelOrig) {
		t.Errorf("camel->snake->camel kayıplı: %v != %v", got, camelOrig)
	}
}

func TestConvertLeavesScalarsAlone(t *testing.T) {
	if got := ToSnakeKeys("justAString"); got != "justAString" {
		t.Errorf("skaler değer değişmemeli, got %v", got)
	}
}
