package graph

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	createJobCypher = `CREATE (j:Job $props) RETURN j`
	linkJobCypher   = `
MATCH (u:User {id: $creator_id}), (j:Job {id: $id})
CREATE (u)-[:CREATED]->(j)`
	findJobCypher   = `MATCH (j:Job {id: $id}) RETURN j`
	listJobsCypher  = `MATCH (j:Job) RETURN j ORDER BY j.created_at DESC`
	updateJobCypher = `
MATCH (j:Job {id: $id})
SET j += $props
RETURN j`
	deleteJobCypher = `
MATCH (j:Job {id: $id})
DETACH DELETE j
RETURN count(*) AS deleted`
)

type jobRepository struct {
	exec executor
}

func NewJobRepository(client *Client) repository.JobRepository {
	return &jobRepository{exec: client.executor()}
}

// Create stores the node and links it to its creator in the same transaction.
func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	props := withIdentity(jobProps(job), job.ID, job.CreatorID, job.CreatedAt)
	_, err := repo.exec.execute(ctx, neo4j.AccessModeWrite, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := run(ctx, tx, createJobCypher, map[string]any{"props": props}); err != nil {
			return nil, err
		}

		return run(ctx, tx, linkJobCypher, map[string]any{
			propID:        job.ID.String(),
			propCreatorID: job.CreatorID.String(),
		})
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create job")
	}

	return nil
}

func (repo *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, findJobCypher, map[string]any{propID: id.String()})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find job")
	}
	if len(records) == 0 {
		return nil, repository.ErrJobNotFound
	}

	return recordToJob(records[0])
}

func (repo *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, listJobsCypher, nil)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list jobs")
	}

	jobs := make([]*entity.Job, 0, len(records))
	for _, record := range records {
		job, err := recordToJob(record)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, updateJobCypher, map[string]any{
		propID:  job.ID.String(),
		"props": jobProps(job),
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update job")
	}
	if len(records) == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

func (repo *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, deleteJobCypher, map[string]any{propID: id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete job")
	}

	deleted, err := deletedCount(records)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete job")
	}
	if deleted == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

func recordToJob(record *neo4j.Record) (*entity.Job, error) {
	node, err := recordNode(record, "j")
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode job")
	}

	job, err := nodeToJob(node)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode job")
	}

	return job, nil
}
