package entity

import "github.com/google/uuid"

// NewID returns a time-ordered identifier, so sorting by id follows creation order.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
