package models

import (
	"github.com/google/uuid"
)

// NewID returns a new opaque document id.
func NewID() string {
	return uuid.NewString()
}
