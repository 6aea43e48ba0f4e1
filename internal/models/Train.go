package models

import (
	"gorm.io/gorm"
)

// Train defines the seat-numbering space for every trip it runs:
// valid cargo numbers are 1..CargoNum and valid seats within a
// cargo are 1..PlacesInCargo.
type Train struct {
	gorm.Model

	Name          string `json:"name" gorm:"unique;not null"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo" gorm:"default:50"`
	TrainTypeID   uint   `json:"train_type_id"`

	TrainType TrainType `gorm:"foreignKey:TrainTypeID" json:"train_type,omitempty"`
}
