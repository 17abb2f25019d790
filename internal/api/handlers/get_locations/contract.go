package get_locations

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/locations/models"
)

type LocationService interface {
	GetGrouped(ctx context.Context) (*models.GroupedLocationsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
