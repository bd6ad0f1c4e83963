package model

import (
	"time"

	"github.com/google/uuid"
)

// JobModel mirrors the 'jobs' table. CreatorID is the CREATED relation.
type JobModel struct {
	ID           uuid.UUID `gorm:"primaryKey"`
	CreatorID    uuid.UUID `gorm:"not null;index"`
	Title        string    `gorm:"not null"`
	Description  string    `gorm:"not null"`
	ContactEmail string    `gorm:"not null"`
	ContactPhone *string
	Company      string `gorm:"not null"`
	Salary       string `gorm:"not null"`
	Location     string `gorm:"not null"`
	JobType      string `gorm:"not null"`
	Requirements *string
	Status       string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (JobModel) TableName() string {
	return "jobs"
}
