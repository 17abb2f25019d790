package create_reservation

import (
	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	createReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

// PlaceRequest точка подачи или назначения
type PlaceRequest struct {
	Type         string              `json:"type"`
	Address      string              `json:"address"`
	Latitude     *float64            `json:"latitude"`
	Longitude    *float64            `json:"longitude"`
	GooglePlace  *domain.MappedPlace `json:"googlePlace,omitempty"`
	Terminal     *string             `json:"terminal,omitempty"`
	FlightNumber *string             `json:"flightNumber,omitempty"`
	FlightOrigin *string             `json:"flightOrigin,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	BookingDate         string        `json:"bookingDate"`
	PickupAddress       *PlaceRequest `json:"pickupAddress"`
	DestinationAddress  *PlaceRequest `json:"destinationAddress,omitempty"`
	NumberOfPassengers  int           `json:"numberOfPassengers"`
	ChildSeat           bool          `json:"childSeat"`
	Vehicle56Seats      bool          `json:"vehicle56Seats"`
	Vehicle7Seats       bool          `json:"vehicle7Seats"`
	SpecialInstructions *string       `json:"specialInstructions,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	BookingID     string  `json:"bookingId"`
	ReservationID int64   `json:"reservationId,omitempty"`
	ServiceID     *string `json:"serviceId,omitempty"`
	ProviderName  *string `json:"providerName,omitempty"`
	BookingDate   string  `json:"bookingDate"`
	Persisted     bool    `json:"persisted"`
	TraceID       string  `json:"traceId,omitempty"`
}

// ToDomainPlace конвертирует точку запроса в domain.Place
func (p *PlaceRequest) ToDomainPlace() *domain.Place {
	if p == nil {
		return nil
	}
	return &domain.Place{
		Type:         domain.PlaceType(p.Type).Normalize(),
		Address:      p.Address,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		GooglePlace:  p.GooglePlace,
		Terminal:     p.Terminal,
		FlightNumber: p.FlightNumber,
		FlightOrigin: p.FlightOrigin,
	}
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64, ip, userAgent string) *createReservation.Request {
	return &createReservation.Request{
		UserID:              userID,
		BookingDate:         r.BookingDate,
		Pickup:              r.PickupAddress.ToDomainPlace(),
		Destination:         r.DestinationAddress.ToDomainPlace(),
		NumberOfPassengers:  r.NumberOfPassengers,
		ChildSeat:           r.ChildSeat,
		Vehicle56Seats:      r.Vehicle56Seats,
		Vehicle7Seats:       r.Vehicle7Seats,
		SpecialInstructions: r.SpecialInstructions,
		IPAddress:           ptr.NonEmpty(ip),
		UserAgent:           ptr.NonEmpty(userAgent),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	out := &CreateReservationResponse{
		Success:       true,
		Message:       msgCreated,
		BookingID:     resp.ProviderBookingID,
		ReservationID: resp.ReservationID,
		ServiceID:     resp.ServiceID,
		ProviderName:  resp.ProviderName,
		BookingDate:   resp.BookingDate,
		Persisted:     resp.Persisted,
	}
	if resp.Trace != nil {
		out.TraceID = resp.Trace.TraceID
	}
	return out
}
