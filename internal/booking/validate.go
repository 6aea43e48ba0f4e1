package booking

import "errors"

// Capacity is a train's seat-numbering envelope: CargoNum cargos,
// each with PlacesInCargo seats, both numbered from 1.
type Capacity struct {
	CargoNum      int
	PlacesInCargo int
}

// ValidateRoute rejects a route whose source and destination identify
// the same station. Pure check, no store access.
func ValidateRoute(sourceStationID, destinationStationID uint) error {
	if sourceStationID == destinationStationID {
		return &SameStationError{StationID: sourceStationID}
	}
	return nil
}

// ValidateSeat checks a requested (cargo, seat) pair against the
// train's capacity. Both dimensions are checked independently, so a
// request can fail on cargo and seat at the same time; the joined
// error carries one CapacityError per offending field.
func ValidateSeat(cargo, seat int, capacity Capacity) error {
	var errs []error
	if cargo < 1 || cargo > capacity.CargoNum {
		errs = append(errs, &CapacityError{Field: "cargo", Requested: cargo, Max: capacity.CargoNum})
	}
	if seat < 1 || seat > capacity.PlacesInCargo {
		errs = append(errs, &CapacityError{Field: "seat", Requested: seat, Max: capacity.PlacesInCargo})
	}
	return errors.Join(errs...)
}
