package models

import (
	"gorm.io/gorm"
)

// Ticket reserves one physical seat on one trip. The composite
// unique index on (trip_id, cargo, seat) is the store-level
// guarantee that a seat is sold at most once; the booking service
// relies on it as the final arbiter under concurrent orders.
type Ticket struct {
	gorm.Model

	Cargo   int  `json:"cargo" gorm:"uniqueIndex:idx_trip_cargo_seat,priority:2"`
	Seat    int  `json:"seat" gorm:"uniqueIndex:idx_trip_cargo_seat,priority:3"`
	TripID  uint `json:"trip_id" gorm:"uniqueIndex:idx_trip_cargo_seat,priority:1"`
	OrderID uint `json:"order_id" gorm:"index"`

	Trip Trip `gorm:"foreignKey:TripID" json:"-"`
}
