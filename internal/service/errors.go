package service

import "errors"

var (
	// ErrEmptyQuery is returned for blank geocoding queries.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidCoordinates is returned for out-of-range coordinates.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
