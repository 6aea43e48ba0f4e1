package models

import (
	"gorm.io/gorm"
)

// Station is a named stop with a fixed geographic position.
// No two stations may share a name or an exact coordinate pair.
type Station struct {
	gorm.Model

	Name      string  `json:"name" binding:"required" gorm:"unique;not null"`
	Latitude  float64 `json:"latitude" gorm:"uniqueIndex:idx_station_position"`
	Longitude float64 `json:"longitude" gorm:"uniqueIndex:idx_station_position"`
}
