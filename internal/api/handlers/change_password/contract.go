package change_password

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

type PasswordService interface {
	ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
