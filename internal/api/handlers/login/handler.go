package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "Solicitud inválida"
	msgMissingFields      = "Email y contraseña son obligatorios"
	msgInvalidCredentials = "Credenciales inválidas"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	result, err := h.service.Login(r.Context(), req.ToServiceRequest(handlers.ClientIP(r), r.UserAgent()))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: ip=%s", handlers.ClientIP(r))
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)

		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		default:
			h.logger.Error("POST /auth/login - Failed to login: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Login successful: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Success: true, Data: result})
}
