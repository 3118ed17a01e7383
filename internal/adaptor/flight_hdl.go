package adaptor

import (
	"net/http"

	"airline-api/internal/usecase"
	"airline-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service usecase.FlightService
	log     *zap.Logger
}

func NewFlightHandler(service usecase.FlightService, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		service: service,
		log:     log.With(zap.String("handler", "flight")),
	}
}

// GetDepartures handles GET /flights/{origin}
func (h *FlightHandler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	origin := chi.URLParam(r, "origin")

	flights, err := h.service.FlightsDeparting(r.Context(), origin)
	if err != nil {
		handleServiceError(w, h.log, err, "get departures", "No flights found")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}

// GetNextAvailable handles GET /flights/{origin}/{destination}
func (h *FlightHandler) GetNextAvailable(w http.ResponseWriter, r *http.Request) {
	origin := chi.URLParam(r, "origin")
	destination := chi.URLParam(r, "destination")

	flights, err := h.service.NextAvailableFlights(r.Context(), origin, destination)
	if err != nil {
		handleServiceError(w, h.log, err, "get next available flights", "No flights found")
		return
	}

	if len(flights) == 0 {
		utils.ResponseNotFound(w, "No flights found")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}
