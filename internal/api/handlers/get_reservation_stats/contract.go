package get_reservation_stats

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetUserStats(ctx context.Context, userID int64) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
