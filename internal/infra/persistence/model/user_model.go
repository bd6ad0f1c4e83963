// Package model holds the GORM row types of the relational stores.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs and timestamps are assigned by the application.
type UserModel struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (UserModel) TableName() string {
	return "users"
}

// CredentialModel mirrors the 'credentials' table, one row per user.
type CredentialModel struct {
	UserID       uuid.UUID `gorm:"primaryKey"`
	PasswordHash string    `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (CredentialModel) TableName() string {
	return "credentials"
}

// CredentialRow is the result of joining credentials with their user's email.
type CredentialRow struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	UpdatedAt    time.Time
}
