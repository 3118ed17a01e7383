package entity

type Ticket struct {
	ID              int64   `db:"id"`
	FlightID        int64   `db:"flight_id"`
	ReservationCode int64   `db:"reservation_code"`
	PassengerName   string  `db:"passenger_name"`
	Price           float64 `db:"price"`
	IsFirstClass    bool    `db:"is_first_class"`
	SeatLabel       *string `db:"seat_label"`
	AircraftSerial  string  `db:"aircraft_serial"`
}

func (t *Ticket) IsCheckedIn() bool {
	return t.SeatLabel != nil
}
