package usecase

import (
	"context"

	"bulletin/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateJobInput defines a new job posting. Status starts as open.
type CreateJobInput struct {
	Title        string
	Description  string
	ContactEmail string
	ContactPhone *string
	Company      string
	Salary       string
	Location     string
	JobType      entity.JobType
	Requirements *string
}

// UpdateJobInput carries a partial update. Nil fields are left untouched.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	ContactEmail *string
	ContactPhone *string
	Company      *string
	Salary       *string
	Location     *string
	JobType      *entity.JobType
	Requirements *string
	Status       *entity.JobStatus
}

// JobUsecase defines job posting operations. Mutations are restricted to the creator.
type JobUsecase interface {
	CreateJob(ctx context.Context, actor *entity.User, input CreateJobInput) (*entity.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	ListJobs(ctx context.Context) ([]*entity.Job, error)
	UpdateJob(ctx context.Context, actor *entity.User, id uuid.UUID, input UpdateJobInput) (*entity.Job, error)
	DeleteJob(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
