package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist or is deleted.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when an id string is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid document id")
)
