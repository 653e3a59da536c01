package store

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique key (slug, email, reference) is already taken
	ErrConflict = errors.New("record already exists")

	// ErrHasDependents is returned when deleting a record that others still reference
	ErrHasDependents = errors.New("record has dependent records")

	// ErrAlreadySettled is returned by CompletePayment when the order is already paid
	ErrAlreadySettled = errors.New("order already settled")
)

// Page selects a window of a listing
type Page struct {
	Limit  int
	Offset int
}
