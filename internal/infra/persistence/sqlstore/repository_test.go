package sqlstore_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/sqlite"
	"bulletin/internal/infra/persistence/sqlstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:", logger.Discard)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, sqlite.Migrate(context.Background(), sqlDB, slog.New(slog.DiscardHandler)))

	return db
}

func newUser(email string, createdAt time.Time) *entity.User {
	return &entity.User{
		ID:        uuid.New(),
		Name:      "Alice",
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func registerUser(t *testing.T, db *gorm.DB, user *entity.User) {
	t.Helper()

	txManager := sqlstore.NewTransactionManager(db)
	err := txManager.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		if err := factory.UserRepo().Create(context.Background(), user); err != nil {
			return err
		}

		return factory.CredentialRepo().Create(context.Background(), &entity.Credential{
			UserID:       user.ID,
			Email:        user.Email,
			PasswordHash: "hash-" + user.Email,
			UpdatedAt:    user.CreatedAt,
		})
	})
	require.NoError(t, err)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewUserRepository(db)
	ctx := context.Background()

	user := newUser("a@x.io", baseTime)
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, user.Name, byID.Name)
	assert.True(t, user.CreatedAt.Equal(byID.CreatedAt))

	byEmail, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "missing@x.io")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@x.io", baseTime)))

	err := repo.Create(ctx, newUser("a@x.io", baseTime))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	other := newUser("b@x.io", baseTime)
	require.NoError(t, repo.Create(ctx, other))

	other.Email = "a@x.io"
	err = repo.Update(ctx, other)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_ListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewUserRepository(db)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	older := newUser("old@x.io", baseTime)
	newer := newUser("new@x.io", baseTime.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID)
	assert.Equal(t, older.ID, users[1].ID)
}

func TestUserRepository_Update(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewUserRepository(db)
	ctx := context.Background()

	user := newUser("a@x.io", baseTime)
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Alicia"
	user.UpdatedAt = baseTime.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.Name)
	assert.True(t, baseTime.Equal(stored.CreatedAt))
	assert.True(t, user.UpdatedAt.Equal(stored.UpdatedAt))

	err = repo.Update(ctx, newUser("ghost@x.io", baseTime))
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DeleteRemovesCredential(t *testing.T) {
	db := openTestDB(t)
	users := sqlstore.NewUserRepository(db)
	credentials := sqlstore.NewCredentialRepository(db)
	ctx := context.Background()

	user := newUser("a@x.io", baseTime)
	registerUser(t, db, user)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := users.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = credentials.FindByEmail(ctx, user.Email)
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)

	err = users.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestCredentialRepository_FindAndReplace(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewCredentialRepository(db)
	ctx := context.Background()

	user := newUser("a@x.io", baseTime)
	registerUser(t, db, user)

	credential, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, user.ID, credential.UserID)
	assert.Equal(t, "a@x.io", credential.Email)
	assert.Equal(t, "hash-a@x.io", credential.PasswordHash)

	credential.PasswordHash = "rotated"
	credential.UpdatedAt = baseTime.Add(time.Hour)
	require.NoError(t, repo.Replace(ctx, credential))

	credential, err = repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "rotated", credential.PasswordHash)

	err = repo.Replace(ctx, &entity.Credential{UserID: uuid.New(), PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	txManager := sqlstore.NewTransactionManager(db)
	ctx := context.Background()
	user := newUser("a@x.io", baseTime)
	errAbort := errors.New("abort")

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		require.NoError(t, factory.UserRepo().Create(ctx, user))

		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = sqlstore.NewUserRepository(db).FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_RollsBackDuplicateRegistration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	registerUser(t, db, newUser("a@x.io", baseTime))

	txManager := sqlstore.NewTransactionManager(db)
	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.UserRepo().Create(ctx, newUser("a@x.io", baseTime))
	})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	users, err := sqlstore.NewUserRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func newEvent(creatorID uuid.UUID, createdAt time.Time) *entity.Event {
	phone := "555-0100"
	capacity := 40

	return &entity.Event{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		Title:        "Meetup",
		Description:  "Monthly meetup",
		ContactEmail: "events@x.io",
		ContactPhone: &phone,
		EventDate:    "2024-06-01",
		EventTime:    "18:30",
		Venue:        "Library",
		Organizer:    "Go Club",
		MaxAttendees: &capacity,
		Status:       entity.EventStatusUpcoming,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestEventRepository_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewEventRepository(db)
	ctx := context.Background()
	creatorID := uuid.New()

	first := newEvent(creatorID, baseTime)
	second := newEvent(creatorID, baseTime.Add(time.Hour))
	second.ContactPhone = nil
	second.MaxAttendees = nil
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, creatorID, stored.CreatorID)
	require.NotNil(t, stored.ContactPhone)
	assert.Equal(t, "555-0100", *stored.ContactPhone)
	require.NotNil(t, stored.MaxAttendees)
	assert.Equal(t, 40, *stored.MaxAttendees)
	assert.Equal(t, entity.EventStatusUpcoming, stored.Status)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID)
	assert.Nil(t, events[0].ContactPhone)
	assert.Nil(t, events[0].MaxAttendees)

	first.Title = "Renamed"
	first.Status = entity.EventStatusCancelled
	first.CurrentAttendees = 12
	first.UpdatedAt = baseTime.Add(2 * time.Hour)
	require.NoError(t, repo.Update(ctx, first))

	stored, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, entity.EventStatusCancelled, stored.Status)
	assert.Equal(t, 12, stored.CurrentAttendees)
	assert.True(t, baseTime.Equal(stored.CreatedAt))

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrEventNotFound)
	assert.ErrorIs(t, repo.Update(ctx, first), repository.ErrEventNotFound)
}

func TestEventRepository_RejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewEventRepository(db)

	event := newEvent(uuid.New(), baseTime)
	event.Status = "postponed"

	err := repo.Create(context.Background(), event)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func newJob(creatorID uuid.UUID, createdAt time.Time) *entity.Job {
	requirements := "Go experience"

	return &entity.Job{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		ContactEmail: "jobs@x.io",
		Company:      "Acme",
		Salary:       "100k",
		Location:     "Remote",
		JobType:      entity.JobTypeFullTime,
		Requirements: &requirements,
		Status:       entity.JobStatusOpen,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestJobRepository_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewJobRepository(db)
	ctx := context.Background()
	creatorID := uuid.New()

	job := newJob(creatorID, baseTime)
	require.NoError(t, repo.Create(ctx, job))

	stored, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobTypeFullTime, stored.JobType)
	assert.Nil(t, stored.ContactPhone)
	require.NotNil(t, stored.Requirements)
	assert.Equal(t, "Go experience", *stored.Requirements)

	job.Status = entity.JobStatusClosed
	job.Salary = "120k"
	job.UpdatedAt = baseTime.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, job))

	jobs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.JobStatusClosed, jobs[0].Status)
	assert.Equal(t, "120k", jobs[0].Salary)

	require.NoError(t, repo.Delete(ctx, job.ID))
	_, err = repo.FindByID(ctx, job.ID)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)
}

func TestJobRepository_RejectsUnknownType(t *testing.T) {
	db := openTestDB(t)
	repo := sqlstore.NewJobRepository(db)

	job := newJob(uuid.New(), baseTime)
	job.JobType = "freelance"

	err := repo.Create(context.Background(), job)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestContentSurvivesCreatorDeletion(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := newUser("a@x.io", baseTime)
	registerUser(t, db, user)

	events := sqlstore.NewEventRepository(db)
	event := newEvent(user.ID, baseTime)
	require.NoError(t, events.Create(ctx, event))

	require.NoError(t, sqlstore.NewUserRepository(db).Delete(ctx, user.ID))

	stored, err := events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.CreatorID)
}
