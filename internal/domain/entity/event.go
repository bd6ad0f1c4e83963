package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// Event is a community event posted by a user.
type Event struct {
	ID               uuid.UUID   `json:"id"`
	CreatorID        uuid.UUID   `json:"creator_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	ContactEmail     string      `json:"contactEmail"`
	ContactPhone     *string     `json:"contactPhone"`
	EventDate        string      `json:"eventDate"` // YYYY-MM-DD
	EventTime        string      `json:"eventTime"` // HH:MM
	Venue            string      `json:"venue"`
	Organizer        string      `json:"organizer"`
	MaxAttendees     *int        `json:"maxAttendees"`
	CurrentAttendees int         `json:"current_attendees"`
	Status           EventStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (e *Event) OwnerID() uuid.UUID {
	return e.CreatorID
}
