package entity

import "time"

// Sale groups the tickets bought together under one reservation code.
type Sale struct {
	ReservationCode int64     `db:"reservation_code"`
	BuyerTaxID      string    `db:"buyer_tax_id"`
	Counter         *string   `db:"counter"`
	SoldAt          time.Time `db:"sold_at"`
}
