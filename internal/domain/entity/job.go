package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobType is the employment type of a job posting.
type JobType string

const (
	JobTypeFullTime JobType = "fulltime"
	JobTypePartTime JobType = "parttime"
	JobTypeContract JobType = "contract"
	JobTypeIntern   JobType = "intern"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeIntern:
		return true
	default:
		return false
	}
}

// JobStatus tells whether a posting still accepts applicants.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Job is a job posting published by a user.
type Job struct {
	ID           uuid.UUID `json:"id"`
	CreatorID    uuid.UUID `json:"creator_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone *string   `json:"contactPhone"`
	Company      string    `json:"company"`
	Salary       string    `json:"salary"`
	Location     string    `json:"location"`
	JobType      JobType   `json:"jobType"`
	Requirements *string   `json:"requirements"`
	Status       JobStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (j *Job) OwnerID() uuid.UUID {
	return j.CreatorID
}
