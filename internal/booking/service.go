package booking

import (
	"gorm.io/gorm"

	"train_station/internal/models"
)

// TicketRequest asks for one seat on one trip.
type TicketRequest struct {
	Cargo  int  `json:"cargo" binding:"required"`
	Seat   int  `json:"seat" binding:"required"`
	TripID uint `json:"trip_id" binding:"required"`
}

// Service sells seats. All writes go through a single transaction per
// order so that an order and its tickets appear together or not at all.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateOrder validates and commits a batch of ticket requests for one
// customer as a single atomic unit. Requests are processed in the
// order supplied; the first failure aborts the whole batch and nothing
// is persisted.
//
// A seat claim is checked twice: once inside the transaction against
// already-sold tickets (which also catches duplicates earlier in the
// same batch), and again by the store's (trip, cargo, seat) unique
// index when the row is inserted. The index is what serializes
// concurrent claims on the same seat: exactly one insert wins, the
// rest surface SeatTakenError.
func (s *Service) CreateOrder(customerID uint, requests []TicketRequest) (*models.Order, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyOrder
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	catalog := NewCatalog(tx)

	order := models.Order{CustomerID: customerID}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, req := range requests {
		trip, err := catalog.Trip(req.TripID)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		// Capacity is read live from the train, never from a copy
		// cached on the trip.
		capacity, err := catalog.TrainCapacity(trip.TrainID)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := ValidateSeat(req.Cargo, req.Seat, capacity); err != nil {
			tx.Rollback()
			return nil, err
		}

		var sold int64
		if err := tx.Model(&models.Ticket{}).
			Where("trip_id = ? AND cargo = ? AND seat = ?", req.TripID, req.Cargo, req.Seat).
			Count(&sold).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if sold > 0 {
			tx.Rollback()
			return nil, &SeatTakenError{TripID: req.TripID, Cargo: req.Cargo, Seat: req.Seat}
		}

		ticket := models.Ticket{
			Cargo:   req.Cargo,
			Seat:    req.Seat,
			TripID:  req.TripID,
			OrderID: order.ID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			tx.Rollback()
			if IsUniqueViolation(err) {
				return nil, &SeatTakenError{TripID: req.TripID, Cargo: req.Cargo, Seat: req.Seat}
			}
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, s.commitConflict(requests)
		}
		return nil, err
	}

	if err := s.db.Preload("Tickets").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// commitConflict resolves which seat of a rolled-back batch lost a
// commit-time race by re-reading the now-visible winner's tickets.
// Falls back to an unlocated SeatTakenError if the winner cannot be
// identified.
func (s *Service) commitConflict(requests []TicketRequest) error {
	for _, req := range requests {
		var sold int64
		err := s.db.Model(&models.Ticket{}).
			Where("trip_id = ? AND cargo = ? AND seat = ?", req.TripID, req.Cargo, req.Seat).
			Count(&sold).Error
		if err != nil {
			continue
		}
		if sold > 0 {
			return &SeatTakenError{TripID: req.TripID, Cargo: req.Cargo, Seat: req.Seat}
		}
	}
	return &SeatTakenError{}
}

// ListOrders returns the customer's orders with their tickets, oldest
// first.
func (s *Service) ListOrders(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Tickets", func(db *gorm.DB) *gorm.DB {
		return db.Order("cargo, seat")
	}).
		Where("customer_id = ?", customerID).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
