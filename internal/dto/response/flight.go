package response

import (
	"time"

	"airline-api/internal/data/entity"
)

type FlightResponse struct {
	ID             int64     `json:"id"`
	AircraftSerial string    `json:"aircraft_serial"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartsAt      time.Time `json:"departs_at"`
	ArrivesAt      time.Time `json:"arrives_at"`
}

func FlightToResponse(flight *entity.Flight) FlightResponse {
	return FlightResponse{
		ID:             flight.ID,
		AircraftSerial: flight.AircraftSerial,
		Origin:         flight.Origin,
		Destination:    flight.Destination,
		DepartsAt:      flight.DepartsAt,
		ArrivesAt:      flight.ArrivesAt,
	}
}
