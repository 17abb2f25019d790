package middleware

import (
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/pkg/jwtmanager"
)

// TokenVerifier проверяет токен доступа
type TokenVerifier interface {
	ParseAndValidate(token string) (*jwtmanager.Claims, error)
}

// HTTPMetrics запись метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
