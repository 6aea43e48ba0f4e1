package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is a scheduled run of one train over one route. A given
// route/train pairing exists at most once. The trip's seat capacity
// is always read live from its train, never copied onto the trip.
type Trip struct {
	gorm.Model

	RouteID       uint      `json:"route_id" gorm:"uniqueIndex:idx_route_train"`
	TrainID       uint      `json:"train_id" gorm:"uniqueIndex:idx_route_train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	// Associations
	Route   Route    `gorm:"foreignKey:RouteID" json:"route,omitempty"`
	Train   Train    `gorm:"foreignKey:TrainID" json:"train,omitempty"`
	Crew    []Crew   `gorm:"many2many:trip_crews;" json:"crew,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:TripID" json:"tickets,omitempty"`
}
