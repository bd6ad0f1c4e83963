package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	mockRepo "bulletin/internal/mocks/repository"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJobService(t *testing.T) (*jobService, *mockRepo.MockJobRepository) {
	t.Helper()

	jobRepo := mockRepo.NewMockJobRepository(t)
	srv := NewJobService(JobServiceParams{
		JobRepo: jobRepo,
		Logger:  slog.New(slog.DiscardHandler),
	}).(*jobService)
	srv.now = func() time.Time { return fixedNow }

	return srv, jobRepo
}

func newStoredJob(creatorID uuid.UUID) *entity.Job {
	created := fixedNow.Add(-48 * time.Hour)

	return &entity.Job{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		Title:        "Backend engineer",
		Description:  "Build APIs",
		ContactEmail: "hr@x.io",
		Company:      "Acme",
		Salary:       "100k",
		Location:     "Remote",
		JobType:      entity.JobTypeFullTime,
		Status:       entity.JobStatusOpen,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestJobService_CreateJob(t *testing.T) {
	ctx := context.Background()
	actor := &entity.User{ID: uuid.New()}
	input := usecase.CreateJobInput{
		Title:        "Backend engineer",
		Description:  "Build APIs",
		ContactEmail: "hr@x.io",
		Company:      "Acme",
		Salary:       "100k",
		Location:     "Remote",
		JobType:      entity.JobTypeContract,
	}

	t.Run("starts open", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		jobRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Job")).Return(nil)

		job, err := srv.CreateJob(ctx, actor, input)
		require.NoError(t, err)
		assert.Equal(t, actor.ID, job.CreatorID)
		assert.Equal(t, entity.JobStatusOpen, job.Status)
		assert.Equal(t, entity.JobTypeContract, job.JobType)
		assert.Equal(t, fixedNow, job.CreatedAt)
	})

	t.Run("unknown job type", func(t *testing.T) {
		srv, _ := newTestJobService(t)
		bad := input
		bad.JobType = "volunteer"

		_, err := srv.CreateJob(ctx, actor, bad)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestJobService_ListJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		jobRepo.EXPECT().List(ctx).Return([]*entity.Job{}, nil)

		_, err := srv.ListJobs(ctx)
		assert.ErrorIs(t, err, domainerrors.ErrNoJobsFound)
	})

	t.Run("keeps repository order", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		newer, older := newStoredJob(uuid.New()), newStoredJob(uuid.New())
		jobRepo.EXPECT().List(ctx).Return([]*entity.Job{newer, older}, nil)

		got, err := srv.ListJobs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Job{newer, older}, got)
	})
}

func TestJobService_UpdateJob(t *testing.T) {
	ctx := context.Background()
	owner := &entity.User{ID: uuid.New()}

	t.Run("close posting", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		job := newStoredJob(owner.ID)
		status := entity.JobStatusClosed
		jobRepo.EXPECT().FindByID(ctx, job.ID).Return(job, nil)
		jobRepo.EXPECT().Update(ctx, job).Return(nil)

		got, err := srv.UpdateJob(ctx, owner, job.ID, usecase.UpdateJobInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, entity.JobStatusClosed, got.Status)
		assert.Equal(t, owner.ID, got.CreatorID)
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("ownership is checked before the payload", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		job := newStoredJob(owner.ID)
		jobType := entity.JobType("volunteer")
		jobRepo.EXPECT().FindByID(ctx, job.ID).Return(job, nil)

		_, err := srv.UpdateJob(ctx, &entity.User{ID: uuid.New()}, job.ID, usecase.UpdateJobInput{JobType: &jobType})
		assert.ErrorIs(t, err, domainerrors.ErrJobOwnershipViolation)
	})

	t.Run("unknown status", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		job := newStoredJob(owner.ID)
		status := entity.JobStatus("paused")
		jobRepo.EXPECT().FindByID(ctx, job.ID).Return(job, nil)

		_, err := srv.UpdateJob(ctx, owner, job.ID, usecase.UpdateJobInput{Status: &status})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("missing job", func(t *testing.T) {
		srv, jobRepo := newTestJobService(t)
		id := uuid.New()
		jobRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrJobNotFound)

		_, err := srv.UpdateJob(ctx, owner, id, usecase.UpdateJobInput{})
		assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
	})
}

func TestJobService_DeleteJob(t *testing.T) {
	ctx := context.Background()
	owner := &entity.User{ID: uuid.New()}
	job := newStoredJob(owner.ID)

	srv, jobRepo := newTestJobService(t)
	jobRepo.EXPECT().FindByID(ctx, job.ID).Return(job, nil)
	jobRepo.EXPECT().Delete(ctx, job.ID).Return(nil)

	require.NoError(t, srv.DeleteJob(ctx, owner, job.ID))
}
