package sqlstore

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	if err := repo.db.WithContext(ctx).Create(fromJobDomain(job)).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("job type or status is invalid")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create job")
	}

	return nil
}

func (repo *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var row model.JobModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJobNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find job")
	}

	return toJobDomain(&row), nil
}

func (repo *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	var rows []model.JobModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list jobs")
	}

	jobs := make([]*entity.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, toJobDomain(&rows[i]))
	}

	return jobs, nil
}

func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	result := repo.db.WithContext(ctx).
		Model(&model.JobModel{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"title":         job.Title,
			"description":   job.Description,
			"contact_email": job.ContactEmail,
			"contact_phone": job.ContactPhone,
			"company":       job.Company,
			"salary":        job.Salary,
			"location":      job.Location,
			"job_type":      string(job.JobType),
			"requirements":  job.Requirements,
			"status":        string(job.Status),
			"updated_at":    job.UpdatedAt,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("job type or status is invalid")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

func (repo *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

func toJobDomain(data *model.JobModel) *entity.Job {
	return &entity.Job{
		ID:           data.ID,
		CreatorID:    data.CreatorID,
		Title:        data.Title,
		Description:  data.Description,
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Company:      data.Company,
		Salary:       data.Salary,
		Location:     data.Location,
		JobType:      entity.JobType(data.JobType),
		Requirements: data.Requirements,
		Status:       entity.JobStatus(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromJobDomain(data *entity.Job) *model.JobModel {
	return &model.JobModel{
		ID:           data.ID,
		CreatorID:    data.CreatorID,
		Title:        data.Title,
		Description:  data.Description,
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Company:      data.Company,
		Salary:       data.Salary,
		Location:     data.Location,
		JobType:      string(data.JobType),
		Requirements: data.Requirements,
		Status:       string(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
