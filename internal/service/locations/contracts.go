package locations

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// LocationRepository интерфейс репозитория точек посадки
type LocationRepository interface {
	GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error)
	Search(ctx context.Context, term string) ([]*domain.PredefinedLocation, error)
}

// LocationCache кеш списка активных точек
type LocationCache interface {
	GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error)
	SetActive(ctx context.Context, items []*domain.PredefinedLocation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
