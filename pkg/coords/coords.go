// Package coords форматирует координаты в строковый вид, который принимает провайдер бронирований.
package coords

import (
	"strconv"
	"strings"
)

// Format возвращает кратчайшее десятичное представление без экспоненты
// и без незначащих нулей после точки. Точка присутствует всегда:
// 0 -> "0.0", 41 -> "41.0", 41.38790 -> "41.3879".
func Format(v float64) string {
	if v == 0 {
		return "0.0"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		return s + ".0"
	}

	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
