package auth

import (
	"context"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, upd *domain.UserProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// TokenIssuer выпускает токены доступа
type TokenIssuer interface {
	Issue(userID int64, email string) (string, time.Time, error)
}

// ActivityLogger интерфейс журнала действий пользователя
type ActivityLogger interface {
	Log(ctx context.Context, entry *domain.Activity) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
