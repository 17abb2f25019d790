package change_password

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth"
)

const (
	msgChanged            = "Contraseña cambiada exitosamente"
	msgInvalidRequestBody = "Solicitud inválida"
	msgWrongPassword      = "La contraseña actual es incorrecta"
	msgUserNotFound       = "Usuario no encontrado"
)

type Handler struct {
	service PasswordService
	logger  Logger
}

func NewHandler(service PasswordService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/profile/password
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile/password - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.ChangePassword(r.Context(), req.ToServiceRequest(userID, handlers.ClientIP(r), r.UserAgent()))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), auth.ErrInvalidInput.Error()+": "))

		case errors.Is(err, auth.ErrWrongPassword):
			h.logger.Warn("PUT /profile/password - Wrong current password: user_id=%d", userID)
			handlers.RespondError(w, http.StatusUnauthorized, msgWrongPassword)

		case errors.Is(err, auth.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PUT /profile/password - Failed to change password: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile/password - Password changed: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, ChangePasswordResponse{Success: true, Message: msgChanged})
}
