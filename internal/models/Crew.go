package models

import "gorm.io/gorm"

type Crew struct {
	gorm.Model
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
