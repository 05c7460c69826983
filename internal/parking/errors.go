package parking

import "errors"

var (
	// ErrInvalidPlate is returned when the plate is empty after
	// normalization or contains characters outside [A-Z0-9-].
	ErrInvalidPlate = errors.New("invalid plate")

	// ErrInvalidModel is returned when the model is empty.
	ErrInvalidModel = errors.New("model is required")

	// ErrCapacityExceeded is returned by an entry attempt when every slot
	// is already occupied. The caller may retry later.
	ErrCapacityExceeded = errors.New("no slots available")

	// ErrAlreadyParked is returned by an entry attempt for a plate that
	// already has an open record.
	ErrAlreadyParked = errors.New("vehicle is already parked")

	// ErrVehicleNotFound is returned by an exit or lookup for a plate with
	// no matching record.
	ErrVehicleNotFound = errors.New("vehicle not found")
)
