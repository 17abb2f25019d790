package cancel_reservation

import (
	"context"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByProviderIDAndUser(ctx context.Context, providerBookingID string, userID int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, c *domain.ReservationCancellation) error
}

// ProviderClient интерфейс клиента провайдера бронирований
type ProviderClient interface {
	Cancel(ctx context.Context, providerBookingID string, authHeader string) (*auriga.Trace, error)
}

// Signer интерфейс подписи запросов к провайдеру
type Signer interface {
	CancelSignature(providerBookingID string) string
	AuthHeader(signature string) string
}

// ActivityLogger интерфейс журнала действий пользователя
type ActivityLogger interface {
	Log(ctx context.Context, entry *domain.Activity) error
}

// DeferredWriter повторная запись в БД, когда провайдер уже подтвердил отмену
type DeferredWriter interface {
	Enqueue(name string, fn func(ctx context.Context) error) error
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
