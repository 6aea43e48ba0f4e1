package models

import (
	"gorm.io/gorm"
)

// Route connects a source station to a destination station.
// A station pair may only be connected once, and a route never
// loops back onto its own source (validated before persisting).
type Route struct {
	gorm.Model

	SourceStationID      uint `json:"source_station_id" gorm:"uniqueIndex:idx_source_destination"`
	DestinationStationID uint `json:"destination_station_id" gorm:"uniqueIndex:idx_source_destination"`

	// Distance between the two stations in kilometres.
	Distance uint `json:"distance"`

	// Geometry stored as a WKB LINESTRING between the two stations,
	// derived from their coordinates when the route is written.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	// Associations
	SourceStation      Station `gorm:"foreignKey:SourceStationID" json:"source_station,omitempty"`
	DestinationStation Station `gorm:"foreignKey:DestinationStationID" json:"destination_station,omitempty"`
}
