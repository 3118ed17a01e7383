package entity

import "time"

type Flight struct {
	ID             int64     `db:"id"`
	AircraftSerial string    `db:"aircraft_serial"`
	DepartsAt      time.Time `db:"departs_at"`
	ArrivesAt      time.Time `db:"arrives_at"`
	Origin         string    `db:"origin"`
	Destination    string    `db:"destination"`
}

// HasDeparted reports whether the flight can no longer be sold at now.
func (f *Flight) HasDeparted(now time.Time) bool {
	return !f.DepartsAt.After(now)
}
