package create_reservation

import (
	"unicode/utf8"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// truncateBytes обрезает строку до max байт, не разрывая UTF-8 последовательность
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// limitClientName имя длиной от 30 байт обрезается до 29
func limitClientName(name string) string {
	if len(name) < domain.MaxClientNameBytes {
		return name
	}
	return truncateBytes(name, domain.MaxClientNameBytes-1)
}
