package utils

import "github.com/google/uuid"

// IDAllocator issues identifiers for new records.
type IDAllocator interface {
	NewID() string
}

// UUIDAllocator issues random (version 4) UUIDs rendered as text. They are
// never sequential and never reused.
type UUIDAllocator struct{}

func (UUIDAllocator) NewID() string {
	return uuid.NewString()
}
