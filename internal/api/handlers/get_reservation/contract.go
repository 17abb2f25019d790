package get_reservation

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByProviderID(ctx context.Context, userID int64, providerBookingID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
