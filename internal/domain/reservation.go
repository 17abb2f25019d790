package domain

import (
	"encoding/json"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is the persisted audit row of a reservation submitted to the provider.
// Created once per successful submission, only ever transitions confirmed -> cancelled.
type Reservation struct {
	ID                int64
	UserID            int64
	ProviderBookingID string
	BookingDate       time.Time
	ClientName        string
	ClientPhone       string

	// JSON blocks, see StoredAddress and PassengersDetails
	PickupAddress      json.RawMessage
	DestinationAddress json.RawMessage // nil when no destination was given
	PassengersDetails  json.RawMessage

	SpecialInstructions *string
	ProviderName        *string
	ServiceID           *string

	// Full provider exchange captured at submission time
	ProviderRequest  json.RawMessage
	ProviderResponse json.RawMessage

	Status                 ReservationStatus
	CancellationReason     *string
	CancelledAt            *time.Time
	ProviderCancelResponse json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsUpcoming returns true if the booking date is strictly after now
func (r *Reservation) IsUpcoming(now time.Time) bool {
	return r.BookingDate.After(now)
}

// ReservationFilter selects reservations by booking date relative to now
type ReservationFilter string

const (
	FilterAll      ReservationFilter = "all"
	FilterUpcoming ReservationFilter = "upcoming"
	FilterPast     ReservationFilter = "past"
)

// IsValid returns true for a known filter value
func (f ReservationFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterUpcoming, FilterPast:
		return true
	}
	return false
}

// UserReservationsFilter page of a user's reservations
type UserReservationsFilter struct {
	UserID int64
	Filter ReservationFilter
	Limit  int
	Offset int
}

// ReservationCancellation data written when a reservation is cancelled
type ReservationCancellation struct {
	ReservationID    int64
	Reason           string
	ProviderResponse json.RawMessage
}

// ReservationStats counters for a user's reservations
type ReservationStats struct {
	Total     int
	Upcoming  int
	Today     int
	Completed int
}

// StoredAddress is the JSON shape of pickup/destination kept with a reservation
type StoredAddress struct {
	Type         PlaceType `json:"type"`
	Latitude     string    `json:"latitude"`
	Longitude    string    `json:"longitude"`
	BldgNumber   string    `json:"bldgNumber"`
	Street       string    `json:"street"`
	Locality     string    `json:"locality"`
	Town         string    `json:"town"`
	Country      string    `json:"country"`
	Address      *string   `json:"address"`
	Terminal     *string   `json:"terminal,omitempty"`
	FlightNumber *string   `json:"flight_number,omitempty"`
	FlightOrigin *string   `json:"flight_origin,omitempty"`
}

// PassengersDetails is the JSON shape of passenger/vehicle options kept with a reservation
type PassengersDetails struct {
	NumberOfPassengers int  `json:"number_of_passengers"`
	ChildSeat          bool `json:"child_seat"`
	Vehicle56Seats     bool `json:"vehicle_5_6_seats"`
	Vehicle7Seats      bool `json:"vehicle_7_seats"`
}
