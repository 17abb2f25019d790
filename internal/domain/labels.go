package domain

import "strings"

// Тексты для писем и квитанций

// VehicleTypeLabel название типа автомобиля по выбранным опциям
func VehicleTypeLabel(vehicle56Seats, vehicle7Seats bool) string {
	switch {
	case vehicle7Seats:
		return "Vehículo 7 plazas (Mercedes Clase V)"
	case vehicle56Seats:
		return "Vehículo 5-6 plazas (Mercedes Clase V)"
	default:
		return "Vehículo estándar"
	}
}

// ExtrasLabel список дополнительных опций через запятую или "Ninguno"
func ExtrasLabel(childSeat bool) string {
	var extras []string
	if childSeat {
		extras = append(extras, "Alzador infantil")
	}
	if len(extras) == 0 {
		return "Ninguno"
	}
	return strings.Join(extras, ", ")
}

// PlaceLabel человекочитаемый адрес точки; для аэропорта добавляются рейс и терминал
func PlaceLabel(placeType PlaceType, address string, flightNumber, flightOrigin, terminal *string) string {
	switch placeType {
	case PlacePredefined, PlaceAirport:
		var b strings.Builder
		b.WriteString(address)
		if placeType == PlaceAirport {
			if flightNumber != nil && *flightNumber != "" {
				b.WriteString("\nVuelo: " + *flightNumber)
			}
			if flightOrigin != nil && *flightOrigin != "" {
				b.WriteString(" desde " + *flightOrigin)
			}
			if terminal != nil && *terminal != "" {
				b.WriteString("\nTerminal: " + *terminal)
			}
		}
		return b.String()
	default:
		if address == "" {
			return "Dirección no especificada"
		}
		return address
	}
}

// NotSpecifiedLabel подпись для отсутствующего значения
const NotSpecifiedLabel = "No especificado"
