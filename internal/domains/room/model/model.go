package model

import (
	"inn/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"
)

type Room struct {
	ID        int64          `db:"id"`
	Number    string         `db:"number"`
	Type      string         `db:"type"`
	Price     float64        `db:"price"`
	Capacity  int            `db:"capacity"`
	Amenities pq.StringArray `db:"amenities"`
	Image     string         `db:"image"`
	Available bool           `db:"available"`
	model.Metadata
}
