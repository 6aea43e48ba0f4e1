package models

import (
	"gorm.io/gorm"
)

// Order groups the tickets a customer bought in one transaction.
// An order is only ever written together with at least one ticket;
// deleting an order deletes its tickets.
type Order struct {
	gorm.Model

	CustomerID uint `json:"customer_id" gorm:"index"`

	Customer User     `gorm:"foreignKey:CustomerID" json:"-"`
	Tickets  []Ticket `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tickets"`
}
