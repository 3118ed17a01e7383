package entity

type Aircraft struct {
	SerialNumber string `db:"serial_number"`
	Model        string `db:"model"`
}
