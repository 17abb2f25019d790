package create_reservation

import "github.com/m04kA/TaxiClass-ReservationService/internal/domain"

// buildPreferences коды опций провайдера в фиксированном порядке.
// nil, если опций нет: провайдер ожидает null, а не пустой список.
func buildPreferences(req *Request) []string {
	var codes []string
	if req.ChildSeat {
		codes = append(codes, domain.PreferenceChildSeat)
	}
	if req.Vehicle56Seats {
		codes = append(codes, domain.PreferenceVehicle56Seats)
	}
	if req.Vehicle7Seats {
		codes = append(codes, domain.PreferenceVehicle7Seats)
	}
	if req.Pickup != nil && req.Pickup.Type == domain.PlaceAirport {
		codes = append(codes, domain.PreferenceAirportPickup)
	}
	return codes
}
