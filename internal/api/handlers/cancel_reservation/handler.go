package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	cancelReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/cancel_reservation"
)

const (
	msgCancelled           = "Reserva cancelada exitosamente"
	msgInvalidRequestBody  = "Solicitud inválida"
	msgInvalidBookingID    = "ID de reserva no válido"
	msgNotFound            = "Reserva no encontrada"
	msgAlreadyCancelled    = "La reserva ya está cancelada"
	msgPastBooking         = "No se pueden cancelar reservas pasadas"
	msgProviderRejected    = "El proveedor rechazó la cancelación"
	msgProviderUnavailable = "El servicio de reservas no está disponible, inténtelo más tarde"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}
	bookingID := mux.Vars(r)["bookingId"]

	// Тело с причиной отмены необязательно
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("DELETE /reservations/{id} - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, bookingID, handlers.ClientIP(r), r.UserAgent()))
	if err != nil {
		var rejected *auriga.RejectedError
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: booking_id=%s, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrAlreadyCancelled):
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, cancelReservation.ErrPastBooking):
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, cancelReservation.ErrProviderRejected):
			h.logger.Warn("DELETE /reservations/{id} - Provider rejected: booking_id=%s, error=%v", bookingID, err)
			errors.As(err, &rejected)
			handlers.RespondProviderRejected(w, msgProviderRejected, rejected, traceID(r, result))

		case errors.Is(err, cancelReservation.ErrProviderUnavailable):
			h.logger.Error("DELETE /reservations/{id} - Provider unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgProviderUnavailable)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: booking_id=%s, user_id=%d, persisted=%t",
		bookingID, userID, result.Persisted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func traceID(r *http.Request, result *cancelReservation.Response) string {
	if result != nil && result.Trace != nil && result.Trace.TraceID != "" {
		return result.Trace.TraceID
	}
	return middleware.GetRequestID(r.Context())
}
