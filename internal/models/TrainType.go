package models

import "gorm.io/gorm"

type TrainType struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"unique;not null"`

	Trains []Train `gorm:"foreignKey:TrainTypeID" json:"trains,omitempty"`
}
