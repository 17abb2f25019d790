package get_activities

import (
	"errors"
	"net/http"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/activities"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/activities/models"
)

const msgInvalidQuery = "Parámetros de paginación inválidos"

// ActivitiesResponse HTTP response model
type ActivitiesResponse struct {
	Success bool                         `json:"success"`
	Data    *models.ActivityListResponse `json:"data"`
}

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities?limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	offset, err := handlers.QueryInt(r, "offset")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListRequest{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		if errors.Is(err, activities.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /activities - Failed to list activities: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ActivitiesResponse{Success: true, Data: result})
}
