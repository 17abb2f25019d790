package login

import (
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *LoginRequest) ToServiceRequest(ip, userAgent string) *models.LoginRequest {
	return &models.LoginRequest{
		Email:     r.Email,
		Password:  r.Password,
		IPAddress: ip,
		UserAgent: userAgent,
	}
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Success bool                  `json:"success"`
	Data    *models.LoginResponse `json:"data"`
}
