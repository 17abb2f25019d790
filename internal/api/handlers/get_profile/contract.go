package get_profile

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
