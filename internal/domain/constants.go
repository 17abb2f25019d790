package domain

// Booking date formats
const (
	// ProviderDateLayout is the booking date format expected by the provider (numeric offset, no colon)
	ProviderDateLayout = "2006-01-02T15:04:05-0700"

	// FlightArrivalLayout is the flight arrival time format (HHmm)
	FlightArrivalLayout = "1504"
)

// Provider field limits in bytes
const (
	MaxClientNameBytes   = 30
	MaxFlightNumberBytes = 10
	MaxFlightOriginBytes = 30
)

// Provider feature codes
const (
	PreferenceChildSeat      = "1662"
	PreferenceVehicle56Seats = "1663"
	PreferenceVehicle7Seats  = "1665"
	PreferenceAirportPickup  = "1666"
)

// Listing limits
const (
	DefaultReservationsLimit = 10
	MaxReservationsLimit     = 50
	DefaultActivitiesLimit   = 15
	MaxActivitiesLimit       = 50
	MinLocationSearchLength  = 2
)

// DefaultLocationCategory groups predefined locations without a category
const DefaultLocationCategory = "otros"

// DefaultCancellationReason is stored when the user gives no reason
const DefaultCancellationReason = "Cancelado por el usuario"
