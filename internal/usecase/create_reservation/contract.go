package create_reservation

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/mailer"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProviderClient интерфейс клиента провайдера бронирований
type ProviderClient interface {
	Create(ctx context.Context, payload *auriga.BookingPayload, authHeader string) (*auriga.CreateResponse, *auriga.Trace, error)
}

// Signer интерфейс подписи запросов к провайдеру
type Signer interface {
	CreateSignature(p *auriga.BookingPayload) string
	AuthHeader(signature string) string
}

// Notifier интерфейс отправки уведомлений о бронировании
type Notifier interface {
	SendReservationConfirmation(ctx context.Context, email, name string, data *mailer.ReservationEmail) error
	SendReservationNotificationToAdmin(ctx context.Context, adminEmail string, data *mailer.ReservationEmail) error
}

// ActivityLogger интерфейс журнала действий пользователя
type ActivityLogger interface {
	Log(ctx context.Context, entry *domain.Activity) error
}

// DeferredWriter повторная запись в БД, когда провайдер уже подтвердил бронирование
type DeferredWriter interface {
	Enqueue(name string, fn func(ctx context.Context) error) error
}

// AsyncRunner запускает задачу вне текущего запроса
type AsyncRunner interface {
	Go(fn func())
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// GoRunner запускает задачу в отдельной горутине
type GoRunner struct{}

func (GoRunner) Go(fn func()) {
	go fn()
}
