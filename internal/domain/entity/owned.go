package entity

import "github.com/google/uuid"

// Owned is implemented by resources that only their creator may modify.
type Owned interface {
	OwnerID() uuid.UUID
}
