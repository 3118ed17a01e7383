package entity

// Seat is one entry of an aircraft's seat map. Seat maps never change once
// the aircraft is provisioned.
type Seat struct {
	Label          string `db:"label"` // 1A, 12C, etc.
	AircraftSerial string `db:"aircraft_serial"`
	IsFirstClass   bool   `db:"is_first_class"`
}
