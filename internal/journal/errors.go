package journal

import "errors"

var (
	// ErrTripNotFound is returned when a trip ID does not exist.
	ErrTripNotFound = errors.New("trip not found")

	// ErrNoActiveTrip is returned when an operation defaults to the active
	// trip and none is set.
	ErrNoActiveTrip = errors.New("no active trip")

	// ErrNotFound is returned when a photo, expense, note or daily log ID
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSnapshot is returned by restore when the archive holds nothing.
	ErrNoSnapshot = errors.New("no backup snapshot found")
)
