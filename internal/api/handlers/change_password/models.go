package change_password

import (
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

// ChangePasswordRequest HTTP request model
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) ToServiceRequest(userID int64, ip, userAgent string) *models.ChangePasswordRequest {
	return &models.ChangePasswordRequest{
		UserID:          userID,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
		IPAddress:       ip,
		UserAgent:       userAgent,
	}
}

// ChangePasswordResponse HTTP response model
type ChangePasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
