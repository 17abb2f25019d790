package receipts

import (
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

const noDestinationLabel = "Sin destino especificado"

// formatAddress строка адреса для квитанции.
// Для точек с готовым адресом берётся он (у аэропорта с терминалом и рейсом),
// иначе адрес собирается из улицы, дома, района и города.
func formatAddress(a *domain.StoredAddress) string {
	if a == nil {
		return noDestinationLabel
	}

	if a.Type != domain.PlaceAddress && a.Address != nil && *a.Address != "" {
		formatted := *a.Address
		if a.Type == domain.PlaceAirport && a.Terminal != nil && *a.Terminal != "" {
			formatted += " - Terminal " + *a.Terminal
			if a.FlightNumber != nil && *a.FlightNumber != "" {
				formatted += " (Vuelo " + *a.FlightNumber + ")"
			}
		}
		return formatted
	}

	var parts []string
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.BldgNumber != "" {
		parts = append(parts, a.BldgNumber)
	}
	if a.Locality != "" && a.Locality != a.Town {
		parts = append(parts, a.Locality)
	}
	if a.Town != "" {
		parts = append(parts, a.Town)
	}
	if len(parts) == 0 && a.Address != nil {
		return *a.Address
	}
	return strings.Join(parts, ", ")
}

// statusLabel подпись статуса
func statusLabel(s domain.ReservationStatus) string {
	if s == domain.StatusCancelled {
		return "Cancelada"
	}
	return "Confirmada"
}
