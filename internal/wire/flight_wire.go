package wire

import (
	"airline-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFlight(r chi.Router, flightHandler *adaptor.FlightHandler) {
	// GET /flights/{origin} - departures in the look-ahead window
	r.Get("/flights/{origin}", flightHandler.GetDepartures)

	// GET /flights/{origin}/{destination} - next flights on sale
	r.Get("/flights/{origin}/{destination}", flightHandler.GetNextAvailable)
}
