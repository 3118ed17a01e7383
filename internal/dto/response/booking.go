package response

import (
	"time"

	"airline-api/internal/data/entity"
)

type TicketResponse struct {
	ID            int64   `json:"id"`
	PassengerName string  `json:"passenger_name"`
	FirstClass    bool    `json:"first_class"`
	Price         float64 `json:"price"`
	Seat          *string `json:"seat,omitempty"`
}

type PurchaseResponse struct {
	ReservationCode int64            `json:"reservation_code"`
	FlightID        int64            `json:"flight_id"`
	SoldAt          time.Time        `json:"sold_at"`
	TicketCount     int              `json:"ticket_count"`
	Tickets         []TicketResponse `json:"tickets"`
}

type CheckInResponse struct {
	TicketID       int64  `json:"ticket_id"`
	FlightID       int64  `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	FirstClass     bool   `json:"first_class"`
	Seat           string `json:"seat"`
	AircraftSerial string `json:"aircraft_serial"`
}

// Helper converters
func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		PassengerName: ticket.PassengerName,
		FirstClass:    ticket.IsFirstClass,
		Price:         ticket.Price,
		Seat:          ticket.SeatLabel,
	}
}

func NewPurchaseResponse(sale *entity.Sale, flightID int64, tickets []*entity.Ticket) *PurchaseResponse {
	items := make([]TicketResponse, len(tickets))
	for i, ticket := range tickets {
		items[i] = TicketToResponse(ticket)
	}

	return &PurchaseResponse{
		ReservationCode: sale.ReservationCode,
		FlightID:        flightID,
		SoldAt:          sale.SoldAt,
		TicketCount:     len(items),
		Tickets:         items,
	}
}

func NewCheckInResponse(ticket *entity.Ticket, seat *entity.Seat) *CheckInResponse {
	return &CheckInResponse{
		TicketID:       ticket.ID,
		FlightID:       ticket.FlightID,
		PassengerName:  ticket.PassengerName,
		FirstClass:     ticket.IsFirstClass,
		Seat:           seat.Label,
		AircraftSerial: seat.AircraftSerial,
	}
}
