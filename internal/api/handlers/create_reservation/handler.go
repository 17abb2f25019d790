package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	createReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/create_reservation"
)

const (
	msgCreated             = "Reserva creada exitosamente"
	msgInvalidRequestBody  = "Datos de la reserva inválidos"
	msgIncompleteData      = "Datos incompletos"
	msgUserNotFound        = "Usuario no encontrado"
	msgProviderRejected    = "El proveedor rechazó la reserva"
	msgProviderUnavailable = "El servicio de reservas no está disponible, inténtelo más tarde"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, handlers.ClientIP(r), r.UserAgent()))
	if err != nil {
		var rejected *auriga.RejectedError
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgIncompleteData)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrProviderRejected):
			h.logger.Warn("POST /reservations - Provider rejected: user_id=%d, error=%v", userID, err)
			errors.As(err, &rejected)
			handlers.RespondProviderRejected(w, msgProviderRejected, rejected, traceID(r, result))

		case errors.Is(err, createReservation.ErrProviderUnavailable):
			h.logger.Error("POST /reservations - Provider unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgProviderUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Persisted {
		h.logger.Warn("POST /reservations - Reservation confirmed but not yet persisted: user_id=%d, booking_id=%s",
			userID, result.ProviderBookingID)
	}
	h.logger.Info("POST /reservations - Reservation created: user_id=%d, booking_id=%s", userID, result.ProviderBookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// traceID идентификатор трассы провайдера, иначе ID запроса
func traceID(r *http.Request, result *createReservation.Response) string {
	if result != nil && result.Trace != nil && result.Trace.TraceID != "" {
		return result.Trace.TraceID
	}
	return middleware.GetRequestID(r.Context())
}
