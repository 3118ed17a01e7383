package wire

import (
	"airline-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /purchase/{flight} - sell tickets under one reservation
	r.Post("/purchase/{flight}", bookingHandler.Purchase)

	// POST /checkin/{ticket} - assign a seat
	r.Post("/checkin/{ticket}", bookingHandler.CheckIn)
}
