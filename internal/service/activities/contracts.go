package activities

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// ActivityRepository интерфейс репозитория журнала действий
type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Activity, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
