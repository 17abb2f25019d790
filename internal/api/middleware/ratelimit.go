package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
)

const msgTooManyRequests = "Demasiadas solicitudes, inténtelo más tarde"

// RateLimiter ограничение частоты запросов на пользователя (или IP для анонимных)
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	logger   Logger
}

// NewRateLimiter создает ограничитель; burst <= 0 заменяется на 1
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:    rate.Limit(rps),
		burst:  burst,
		logger: logger,
	}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return actual.(*rate.Limiter)
}

// Middleware отвечает 429 при превышении лимита
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + handlers.ClientIP(r)
			if userID, ok := GetUserID(r.Context()); ok {
				key = fmt.Sprintf("user:%d", userID)
			}

			if !l.getLimiter(key).Allow() {
				l.logger.Warn("RateLimit: limit exceeded for %s on %s %s", key, r.Method, r.URL.Path)
				if l.rps > 0 {
					retryAfter := int(math.Ceil(1 / float64(l.rps)))
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
