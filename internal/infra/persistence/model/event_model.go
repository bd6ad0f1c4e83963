package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel mirrors the 'events' table. CreatorID is the CREATED relation.
type EventModel struct {
	ID               uuid.UUID `gorm:"primaryKey"`
	CreatorID        uuid.UUID `gorm:"not null;index"`
	Title            string    `gorm:"not null"`
	Description      string    `gorm:"not null"`
	ContactEmail     string    `gorm:"not null"`
	ContactPhone     *string
	EventDate        string `gorm:"not null"`
	EventTime        string `gorm:"not null"`
	Venue            string `gorm:"not null"`
	Organizer        string `gorm:"not null"`
	MaxAttendees     *int
	CurrentAttendees int       `gorm:"not null"`
	Status           string    `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (EventModel) TableName() string {
	return "events"
}
