package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// validateRequest проверяет обязательные поля до обращения к провайдеру
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is empty", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BookingDate) == "" {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	if req.Pickup == nil {
		return fmt.Errorf("%w: pickupAddress is required", ErrInvalidInput)
	}
	if err := validatePlace("pickupAddress", req.Pickup); err != nil {
		return err
	}

	if req.Destination != nil {
		if err := validatePlace("destinationAddress", req.Destination); err != nil {
			return err
		}
	}

	if req.NumberOfPassengers <= 0 {
		return fmt.Errorf("%w: numberOfPassengers must be positive", ErrInvalidInput)
	}

	return nil
}

// validatePlace без координат провайдер бронирование не примет
func validatePlace(field string, place *domain.Place) error {
	if !place.HasCoordinates() {
		return fmt.Errorf("%w: %s coordinates are required", ErrInvalidInput, field)
	}
	if *place.Latitude < -90 || *place.Latitude > 90 {
		return fmt.Errorf("%w: %s latitude out of range", ErrInvalidInput, field)
	}
	if *place.Longitude < -180 || *place.Longitude > 180 {
		return fmt.Errorf("%w: %s longitude out of range", ErrInvalidInput, field)
	}
	return nil
}
