// Package keymap, istemci tarafının camelCase alan adları ile veritabanının
// snake_case kolon adları arasındaki çeviriyi yapar. Dönüşüm iç içe map ve
// dizilere özyinelemeli uygulanır ve kayıpsızdır: beklenen adlandırma
// kurallarına uyan anahtarlar için ToSnakeKeys(ToCamelKeys(x)) == x.
package keymap

import (
	"strings"
	"unicode"
)

// ToSnakeKey: "actualDeliveryDate" -> "actual_delivery_date"
func ToSnakeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToCamelKey: "actual_delivery_date" -> "actualDeliveryDate"
func ToCamelKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToSnakeKeys, bir nesne grafiğindeki tüm map anahtarlarını snake_case'e çevirir.
func ToSnakeKeys(v any) any {
	return convert(v, ToSnakeKey)
}

// ToCamelKeys, bir nesne grafiğindeki tüm map anahtarlarını camelCase'e çevirir.
func ToCamelKeys(v any) any {
	return convert(v, ToCamelKey)
}

func convert(v any, rename func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[rename(k)] = convert(val, rename)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = convert(val, rename)
		}
		return out
	default:
		return v
	}
}
