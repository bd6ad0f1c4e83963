package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bulletin/internal/delivery/context"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type jobService struct {
	jobRepo repository.JobRepository
	logger  *slog.Logger
	now     func() time.Time
}

// JobServiceParams holds dependencies for JobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	JobRepo repository.JobRepository
	Logger  *slog.Logger
}

func NewJobService(params JobServiceParams) usecase.JobUsecase {
	return &jobService{
		jobRepo: params.JobRepo,
		logger:  params.Logger,
		now:     utcNow,
	}
}

func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *jobService) CreateJob(ctx context.Context, actor *entity.User, input usecase.CreateJobInput) (*entity.Job, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !input.JobType.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown job type")
	}

	now := srv.now()
	job := &entity.Job{
		ID:           uuid.New(),
		CreatorID:    actor.ID,
		Title:        input.Title,
		Description:  input.Description,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Company:      input.Company,
		Salary:       input.Salary,
		Location:     input.Location,
		JobType:      input.JobType,
		Requirements: input.Requirements,
		Status:       entity.JobStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.jobRepo.Create(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to create job")
	}

	srv.log(ctx).Info("Job created", slog.Any("jobID", job.ID), slog.Any("creatorID", actor.ID))

	return job, nil
}

func (srv *jobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := srv.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find job")
	}

	return job, nil
}

func (srv *jobService) ListJobs(ctx context.Context) ([]*entity.Job, error) {
	jobs, err := srv.jobRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	if len(jobs) == 0 {
		return nil, domainerrors.ErrNoJobsFound
	}

	return jobs, nil
}

func (srv *jobService) UpdateJob(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.UpdateJobInput) (*entity.Job, error) {
	job, err := authorizeOwner(ctx, actor, id, srv.jobRepo.FindByID, jobOwnership)
	if err != nil {
		return nil, err
	}

	if input.JobType != nil && !input.JobType.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown job type")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown job status")
	}

	if !applyJobUpdate(job, input) {
		return job, nil
	}
	job.UpdatedAt = srv.now()

	if err := srv.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to update job")
	}

	return job, nil
}

func applyJobUpdate(job *entity.Job, input usecase.UpdateJobInput) bool {
	changed := false
	set := func(dst, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}

	set(&job.Title, input.Title)
	set(&job.Description, input.Description)
	set(&job.ContactEmail, input.ContactEmail)
	set(&job.Company, input.Company)
	set(&job.Salary, input.Salary)
	set(&job.Location, input.Location)

	if input.ContactPhone != nil {
		job.ContactPhone = input.ContactPhone
		changed = true
	}
	if input.Requirements != nil {
		job.Requirements = input.Requirements
		changed = true
	}
	if input.JobType != nil {
		job.JobType = *input.JobType
		changed = true
	}
	if input.Status != nil {
		job.Status = *input.Status
		changed = true
	}

	return changed
}

func (srv *jobService) DeleteJob(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if _, err := authorizeOwner(ctx, actor, id, srv.jobRepo.FindByID, jobOwnership); err != nil {
		return err
	}

	if err := srv.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domainerrors.ErrJobNotFound
		}

		return errors.Wrap(err, "failed to delete job")
	}

	srv.log(ctx).Info("Job deleted", slog.Any("jobID", id), slog.Any("actorID", actor.ID))

	return nil
}
