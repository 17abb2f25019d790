package search_locations

import (
	"errors"
	"net/http"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/locations"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/locations/models"
)

const msgTermTooShort = "El término de búsqueda debe tener al menos 2 caracteres"

// SearchResponse HTTP response model
type SearchResponse struct {
	Success bool                            `json:"success"`
	Data    *models.SearchLocationsResponse `json:"data"`
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

// Handle GET /api/v1/locations/search?q=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	result, err := h.service.Search(r.Context(), term)
	if err != nil {
		if errors.Is(err, locations.ErrSearchTermTooShort) {
			handlers.RespondBadRequest(w, msgTermTooShort)
			return
		}
		h.logger.Error("GET /locations/search - Failed to search locations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SearchResponse{Success: true, Data: result})
}
