package get_reservation_receipt

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations"
)

const msgNotFound = "Reserva no encontrada"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{bookingId}/receipt
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}
	bookingID := mux.Vars(r)["bookingId"]

	file, err := h.service.GetReceipt(r.Context(), userID, bookingID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("GET /reservations/{id}/receipt - Reservation not found: booking_id=%s, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /reservations/{id}/receipt - Failed to render receipt: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/{id}/receipt - Receipt generated: booking_id=%s, size=%d", bookingID, len(file.Content))
	handlers.RespondFile(w, file.ContentType, file.Filename, file.Content)
}
