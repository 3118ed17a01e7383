package entity

type Airport struct {
	Code    string `db:"code"` // IATA, e.g. LIS
	Name    string `db:"name"`
	City    string `db:"city"`
	Country string `db:"country"`
}
