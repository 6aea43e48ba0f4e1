package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrEmptyOrder is returned when an order is submitted with no tickets.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// SameStationError rejects a route whose source and destination are
// the same station.
type SameStationError struct {
	StationID uint
}

func (e *SameStationError) Error() string {
	return fmt.Sprintf("route source and destination cannot be the same station (station %d)", e.StationID)
}

// CapacityError reports a cargo or seat number outside the train's
// configured range. Field is "cargo" or "seat".
type CapacityError struct {
	Field     string
	Requested int
	Max       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s number must be in available range (1, %d), got %d", e.Field, e.Max, e.Requested)
}

// TripNotFoundError reports a ticket request referencing a trip that
// does not exist in the catalog.
type TripNotFoundError struct {
	TripID uint
}

func (e *TripNotFoundError) Error() string {
	return fmt.Sprintf("trip %d not found", e.TripID)
}

// SeatTakenError reports that the requested seat was already sold,
// either by a previously committed order or earlier in the same batch.
type SeatTakenError struct {
	TripID uint
	Cargo  int
	Seat   int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat already taken: trip %d, cargo %d, seat %d", e.TripID, e.Cargo, e.Seat)
}

// IsUniqueViolation reports whether err is a unique-constraint failure
// from the underlying store. Postgres surfaces these as pq error code
// 23505; the sqlite driver used in tests reports them by message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
