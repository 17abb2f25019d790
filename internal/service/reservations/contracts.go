package reservations

import (
	"context"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByProviderIDAndUser(ctx context.Context, providerBookingID string, userID int64) (*domain.Reservation, error)
	GetByUserWithFilter(ctx context.Context, f domain.UserReservationsFilter, dayStart time.Time) ([]*domain.Reservation, int, error)
	GetStats(ctx context.Context, userID int64, now, dayStart, dayEnd time.Time) (*domain.ReservationStats, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ReceiptRenderer формирует печатную квитанцию
type ReceiptRenderer interface {
	Render(res *domain.Reservation, user *domain.User) ([]byte, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
