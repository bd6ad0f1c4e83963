package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the stored password verifier of a user. Exactly one exists per email.
type Credential struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	UpdatedAt    time.Time
}
