package update_profile

import (
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

// UpdateProfileRequest HTTP request model; отсутствующее поле не меняется
type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Account *string `json:"account,omitempty"`
}

func (r *UpdateProfileRequest) ToServiceRequest(userID int64, ip, userAgent string) *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		UserID:    userID,
		Name:      r.Name,
		Phone:     r.Phone,
		Account:   r.Account,
		IPAddress: ip,
		UserAgent: userAgent,
	}
}

// UpdateProfileResponse HTTP response model
type UpdateProfileResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *models.UserResponse `json:"data"`
}
