package model

import (
	"time"

	"inn/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"
)

type Booking struct {
	ID         int64     `db:"id"`
	RoomID     int64     `db:"room_id"`
	UserID     int64     `db:"user_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	TotalPrice float64   `db:"total_price"`
	Status     string    `db:"status"`
	model.Metadata
}
