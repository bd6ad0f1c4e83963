package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	mockRepo "bulletin/internal/mocks/repository"
	mockService "bulletin/internal/mocks/service"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type userServiceMocks struct {
	txManager      *mockRepo.MockTransactionManager
	factory        *mockRepo.MockRepositoryFactory
	userRepo       *mockRepo.MockUserRepository
	txUserRepo     *mockRepo.MockUserRepository
	credentialRepo *mockRepo.MockCredentialRepository
	hasher         *mockService.MockPasswordHasher
}

func newTestUserService(t *testing.T) (*userService, userServiceMocks) {
	t.Helper()

	mocks := userServiceMocks{
		txManager:      mockRepo.NewMockTransactionManager(t),
		factory:        mockRepo.NewMockRepositoryFactory(t),
		userRepo:       mockRepo.NewMockUserRepository(t),
		txUserRepo:     mockRepo.NewMockUserRepository(t),
		credentialRepo: mockRepo.NewMockCredentialRepository(t),
		hasher:         mockService.NewMockPasswordHasher(t),
	}

	srv := NewUserService(UserServiceParams{
		TxManager: mocks.txManager,
		UserRepo:  mocks.userRepo,
		Hasher:    mocks.hasher,
		Logger:    slog.New(slog.DiscardHandler),
	}).(*userService)
	srv.now = func() time.Time { return fixedNow }

	return srv, mocks
}

// expectTransaction runs the transactional callback against the factory mock.
func (m userServiceMocks) expectTransaction() {
	m.txManager.EXPECT().Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(m.factory)
		})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	input := usecase.RegisterUserInput{Name: "Alice", Email: "a@x.io", Password: "p1"}

	t.Run("creates user and credential together", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.hasher.EXPECT().ValidatePasswordStrength("p1").Return(nil)
		mocks.hasher.EXPECT().Hash("p1").Return("digest", nil)
		mocks.expectTransaction()
		mocks.factory.EXPECT().UserRepo().Return(mocks.txUserRepo)
		mocks.factory.EXPECT().CredentialRepo().Return(mocks.credentialRepo)
		mocks.txUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

		var stored *entity.Credential
		mocks.credentialRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Credential")).
			Run(func(_ context.Context, credential *entity.Credential) { stored = credential }).
			Return(nil)

		user, err := srv.Register(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "a@x.io", user.Email)
		assert.Equal(t, fixedNow, user.CreatedAt)
		assert.Equal(t, fixedNow, user.UpdatedAt)

		require.NotNil(t, stored)
		assert.Equal(t, user.ID, stored.UserID)
		assert.Equal(t, "digest", stored.PasswordHash)
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.hasher.EXPECT().ValidatePasswordStrength("p1").Return(nil)
		mocks.hasher.EXPECT().Hash("p1").Return("digest", nil)
		mocks.expectTransaction()
		mocks.factory.EXPECT().UserRepo().Return(mocks.txUserRepo)
		mocks.txUserRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.Wrap(repository.ErrEmailTaken, "a@x.io"))

		_, err := srv.Register(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	})

	t.Run("weak password never reaches storage", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.hasher.EXPECT().ValidatePasswordStrength("p1").
			Return(domainerrors.ErrPasswordStrength.WithDetails("password must be at least 8 characters"))

		_, err := srv.Register(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
	})

	t.Run("hash failure", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.hasher.EXPECT().ValidatePasswordStrength("p1").Return(nil)
		mocks.hasher.EXPECT().Hash("p1").Return("", errors.New("entropy exhausted"))

		_, err := srv.Register(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})
}

func TestUserService_GetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		id := uuid.New()
		mocks.userRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

		_, err := srv.GetUser(ctx, id)
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})

	t.Run("empty store lists no users", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.userRepo.EXPECT().List(ctx).Return(nil, nil)

		users, err := srv.ListUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("list", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		users := []*entity.User{{ID: uuid.New()}, {ID: uuid.New()}}
		mocks.userRepo.EXPECT().List(ctx).Return(users, nil)

		got, err := srv.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	created := fixedNow.Add(-time.Hour)

	newUser := func() *entity.User {
		return &entity.User{ID: uuid.MustParse("6f1d8c1e-7d8a-4a53-9f3e-2f61a3c0b001"), Name: "Alice", Email: "a@x.io", CreatedAt: created, UpdatedAt: created}
	}

	t.Run("empty patch returns the user unchanged", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		user := newUser()
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		got, err := srv.UpdateUser(ctx, user, user.ID, usecase.UpdateUserInput{})
		require.NoError(t, err)
		assert.Equal(t, created, got.UpdatedAt)
	})

	t.Run("name change bumps updated_at", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		user := newUser()
		name := "Alicia"
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		mocks.expectTransaction()
		mocks.factory.EXPECT().UserRepo().Return(mocks.txUserRepo)
		mocks.txUserRepo.EXPECT().Update(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Name == "Alicia" && u.UpdatedAt.Equal(fixedNow)
		})).Return(nil)

		got, err := srv.UpdateUser(ctx, user, user.ID, usecase.UpdateUserInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("password change replaces the credential", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		user := newUser()
		password := "p2"
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		mocks.hasher.EXPECT().ValidatePasswordStrength("p2").Return(nil)
		mocks.hasher.EXPECT().Hash("p2").Return("digest2", nil)
		mocks.expectTransaction()
		mocks.factory.EXPECT().UserRepo().Return(mocks.txUserRepo)
		mocks.factory.EXPECT().CredentialRepo().Return(mocks.credentialRepo)
		mocks.txUserRepo.EXPECT().Update(ctx, mock.Anything).Return(nil)
		mocks.credentialRepo.EXPECT().Replace(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
			return c.UserID == user.ID && c.PasswordHash == "digest2"
		})).Return(nil)

		_, err := srv.UpdateUser(ctx, user, user.ID, usecase.UpdateUserInput{Password: &password})
		require.NoError(t, err)
	})

	t.Run("email already in use", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		user := newUser()
		email := "b@x.io"
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		mocks.expectTransaction()
		mocks.factory.EXPECT().UserRepo().Return(mocks.txUserRepo)
		mocks.txUserRepo.EXPECT().Update(ctx, mock.Anything).Return(repository.ErrEmailTaken)

		_, err := srv.UpdateUser(ctx, user, user.ID, usecase.UpdateUserInput{Email: &email})
		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	})

	t.Run("other account is forbidden", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		target := newUser()
		name := "Mallory"
		mocks.userRepo.EXPECT().FindByID(ctx, target.ID).Return(target, nil)

		_, err := srv.UpdateUser(ctx, &entity.User{ID: uuid.New()}, target.ID, usecase.UpdateUserInput{Name: &name})
		assert.ErrorIs(t, err, domainerrors.ErrUserOwnershipViolation)
	})

	t.Run("missing account is not found", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		id := uuid.New()
		mocks.userRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

		_, err := srv.UpdateUser(ctx, newUser(), id, usecase.UpdateUserInput{})
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New()}

	t.Run("own account", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		mocks.userRepo.EXPECT().Delete(ctx, user.ID).Return(nil)

		require.NoError(t, srv.DeleteUser(ctx, user, user.ID))
	})

	t.Run("other account", func(t *testing.T) {
		srv, mocks := newTestUserService(t)
		mocks.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		err := srv.DeleteUser(ctx, &entity.User{ID: uuid.New()}, user.ID)
		assert.ErrorIs(t, err, domainerrors.ErrUserOwnershipViolation)
	})

	t.Run("anonymous", func(t *testing.T) {
		srv, _ := newTestUserService(t)

		err := srv.DeleteUser(ctx, nil, user.ID)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}
