package booking

import (
	"errors"

	"gorm.io/gorm"

	"train_station/internal/models"
)

// Catalog is the read-only view of the travel catalog the booking
// core depends on. The core never writes catalog entities.
type Catalog interface {
	// Trip returns the trip with its train loaded, or a
	// TripNotFoundError if no such trip exists.
	Trip(tripID uint) (*models.Trip, error)

	// TrainCapacity returns the current seat envelope of a train.
	TrainCapacity(trainID uint) (Capacity, error)
}

type gormCatalog struct {
	db *gorm.DB
}

// NewCatalog returns a Catalog backed by the given GORM handle. The
// handle may be a live transaction, in which case lookups see the
// transaction's snapshot.
func NewCatalog(db *gorm.DB) Catalog {
	return &gormCatalog{db: db}
}

func (c *gormCatalog) Trip(tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := c.db.Preload("Train").First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TripNotFoundError{TripID: tripID}
		}
		return nil, err
	}
	return &trip, nil
}

func (c *gormCatalog) TrainCapacity(trainID uint) (Capacity, error) {
	var train models.Train
	if err := c.db.First(&train, trainID).Error; err != nil {
		return Capacity{}, err
	}
	return Capacity{CargoNum: train.CargoNum, PlacesInCargo: train.PlacesInCargo}, nil
}
