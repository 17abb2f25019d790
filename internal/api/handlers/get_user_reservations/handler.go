package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidPagination = "Parámetros de paginación inválidos"
	msgInvalidFilter     = "Filtro no válido, use all, upcoming o past"
)

// ReservationsResponse HTTP response model
type ReservationsResponse struct {
	Success bool `json:"success"`
	*models.ReservationListResponse
}

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

// Handle GET /api/v1/reservations?filter=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	req := &models.GetUserReservationsRequest{
		UserID: userID,
		Filter: r.URL.Query().Get("filter"),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.service.GetUserReservations(r.Context(), req)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /reservations - Invalid filter: user_id=%d, filter=%q", userID, req.Filter)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: user_id=%d, count=%d", userID, len(result.Data))
	handlers.RespondJSON(w, http.StatusOK, ReservationsResponse{Success: true, ReservationListResponse: result})
}
