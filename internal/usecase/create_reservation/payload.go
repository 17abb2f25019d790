package create_reservation

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/coords"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

// buildPayload собирает тело запроса к провайдеру.
// bookingDate уже в формате провайдера, pickupTime нужен для времени прилёта рейса.
func buildPayload(req *Request, user *domain.User, bookingDate string, pickupTime time.Time) *auriga.BookingPayload {
	payload := &auriga.BookingPayload{
		PhoneNumber:   user.Phone,
		ClientName:    limitClientName(user.Name),
		BookingDate:   bookingDate,
		Special:       nonEmpty(req.SpecialInstructions),
		Preferences:   buildPreferences(req),
		Account:       user.Account,
		PickupAddress: providerAddress(req.Pickup),
	}

	if req.Destination != nil {
		dest := providerAddress(req.Destination)
		payload.DestinationAddress = &dest
	}

	if flight := buildFlight(req.Pickup, pickupTime); flight != nil {
		payload.Flight = flight
	}

	return payload
}

// providerAddress нормализованный адрес с координатами в строковом виде
func providerAddress(place *domain.Place) auriga.Address {
	normalized := normalizeAddress(place)
	return auriga.Address{
		Latitude:   coords.Format(*place.Latitude),
		Longitude:  coords.Format(*place.Longitude),
		BldgNumber: normalized.BldgNumber,
		Street:     normalized.Street,
		Locality:   normalized.Locality,
		Town:       normalized.Town,
		Country:    normalized.Country,
	}
}

// buildFlight блок рейса заполняется только для аэропорта с номером рейса и городом вылета
func buildFlight(pickup *domain.Place, pickupTime time.Time) *auriga.Flight {
	if pickup == nil || pickup.Type != domain.PlaceAirport {
		return nil
	}
	number := strings.TrimSpace(ptr.Value(pickup.FlightNumber))
	origin := strings.TrimSpace(ptr.Value(pickup.FlightOrigin))
	if number == "" || origin == "" {
		return nil
	}

	return &auriga.Flight{
		FlightNo:    truncateBytes(number, domain.MaxFlightNumberBytes),
		ArrivalTime: pickupTime.Format(domain.FlightArrivalLayout),
		Origin:      truncateBytes(origin, domain.MaxFlightOriginBytes),
	}
}

// buildRecord строка аудита для успешно созданного бронирования
func buildRecord(
	req *Request,
	payload *auriga.BookingPayload,
	pickupTime time.Time,
	result *auriga.CreateResponse,
	trace *auriga.Trace,
) (*domain.Reservation, error) {
	pickupJSON, err := json.Marshal(storedAddress(req.Pickup, &payload.PickupAddress, true))
	if err != nil {
		return nil, err
	}

	var destinationJSON json.RawMessage
	if req.Destination != nil && payload.DestinationAddress != nil {
		destinationJSON, err = json.Marshal(storedAddress(req.Destination, payload.DestinationAddress, false))
		if err != nil {
			return nil, err
		}
	}

	passengersJSON, err := json.Marshal(domain.PassengersDetails{
		NumberOfPassengers: req.NumberOfPassengers,
		ChildSeat:          req.ChildSeat,
		Vehicle56Seats:     req.Vehicle56Seats,
		Vehicle7Seats:      req.Vehicle7Seats,
	})
	if err != nil {
		return nil, err
	}

	record := &domain.Reservation{
		ProviderBookingID:   result.BookingID,
		BookingDate:         pickupTime,
		ClientName:          payload.ClientName,
		ClientPhone:         ptr.Value(payload.PhoneNumber),
		PickupAddress:       pickupJSON,
		DestinationAddress:  destinationJSON,
		PassengersDetails:   passengersJSON,
		SpecialInstructions: payload.Special,
		ProviderName:        result.ProviderName,
		ServiceID:           result.ServiceID,
		Status:              domain.StatusConfirmed,
	}

	if trace != nil {
		if record.ProviderRequest, err = json.Marshal(trace.Request); err != nil {
			return nil, err
		}
		if trace.Response != nil {
			if record.ProviderResponse, err = json.Marshal(trace.Response); err != nil {
				return nil, err
			}
		}
	}
	if record.ProviderResponse == nil && len(result.Raw) > 0 {
		record.ProviderResponse = result.Raw
	}

	return record, nil
}

// storedAddress для точки подачи в аэропорту сохраняются терминал и рейс, для назначения только терминал
func storedAddress(place *domain.Place, addr *auriga.Address, isPickup bool) domain.StoredAddress {
	stored := domain.StoredAddress{
		Type:       place.Type.Normalize(),
		Latitude:   addr.Latitude,
		Longitude:  addr.Longitude,
		BldgNumber: addr.BldgNumber,
		Street:     addr.Street,
		Locality:   addr.Locality,
		Town:       addr.Town,
		Country:    addr.Country,
		Address:    ptr.NonEmpty(place.Address),
	}

	if place.Type == domain.PlaceAirport {
		stored.Terminal = place.Terminal
		if isPickup {
			stored.FlightNumber = place.FlightNumber
			stored.FlightOrigin = place.FlightOrigin
		}
	}

	return stored
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
