package models

import (
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// Request модели

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// UpdateProfileRequest изменение профиля; nil поле не меняется, пустая строка очищает телефон и абонента
type UpdateProfileRequest struct {
	UserID    int64
	Name      *string
	Phone     *string
	Account   *string
	IPAddress string
	UserAgent string
}

// ChangePasswordRequest смена пароля с проверкой текущего
type ChangePasswordRequest struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
	IPAddress       string
	UserAgent       string
}

// Response модели

// UserResponse профиль без чувствительных данных
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Account   *string   `json:"account"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse токен доступа и профиль
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Account:   u.Account,
		CreatedAt: u.CreatedAt,
	}
}
