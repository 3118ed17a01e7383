package adaptor

import (
	"airline-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Flight  *FlightHandler
	Booking *BookingHandler
	System  *SystemHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, log),
		Flight:  NewFlightHandler(service.Flight, log),
		Booking: NewBookingHandler(service.Reservation, service.CheckIn, log),
		System:  NewSystemHandler(db, log),
	}
}
