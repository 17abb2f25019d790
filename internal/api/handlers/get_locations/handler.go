package get_locations

import (
	"net/http"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/locations/models"
)

// LocationsResponse HTTP response model
type LocationsResponse struct {
	Success bool                             `json:"success"`
	Data    *models.GroupedLocationsResponse `json:"data"`
}

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.GetGrouped(r.Context())
	if err != nil {
		h.logger.Error("GET /locations - Failed to get locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LocationsResponse{Success: true, Data: grouped})
}
