package update_profile

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth"
)

const (
	msgUpdated            = "Perfil actualizado correctamente"
	msgInvalidRequestBody = "Solicitud inválida"
	msgNothingToUpdate    = "No hay cambios que guardar"
	msgUserNotFound       = "Usuario no encontrado"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), req.ToServiceRequest(userID, handlers.ClientIP(r), r.UserAgent()))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("PUT /profile - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, validationMessage(err))

		case errors.Is(err, auth.ErrNothingToUpdate):
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, auth.ErrUserNotFound):
			h.logger.Warn("PUT /profile - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PUT /profile - Failed to update profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile - Profile updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, UpdateProfileResponse{Success: true, Message: msgUpdated, Data: profile})
}

// validationMessage текст ошибок валидации без префикса sentinel ошибки
func validationMessage(err error) string {
	msg := err.Error()
	if _, rest, found := strings.Cut(msg, auth.ErrInvalidInput.Error()+": "); found {
		return rest
	}
	return msg
}
