package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bulletin/internal/delivery/context"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/domain/service"
	"bulletin/internal/errors"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
	now       func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
		now:       utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the user and its credential atomically. A taken email surfaces as a conflict
// from the store's uniqueness constraint.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*entity.User, error) {
	passwordHash, err := srv.hashPassword(input.Password)
	if err != nil {
		srv.log(ctx).Warn("Registration password rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	now := srv.now()
	user := &entity.User{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		return repoFactory.CredentialRepo().Create(ctx, &entity.Credential{
			UserID:       user.ID,
			Email:        user.Email,
			PasswordHash: passwordHash,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to register user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))

	return user, nil
}

func (srv *userService) hashPassword(password string) (string, error) {
	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	passwordHash, err := srv.hasher.Hash(password)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return "", err
		}

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return passwordHash, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	if users == nil {
		users = []*entity.User{}
	}

	return users, nil
}

// UpdateUser changes the caller's own profile. A new password replaces the stored credential
// in the same transaction.
func (srv *userService) UpdateUser(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	user, err := authorizeOwner(ctx, actor, id, srv.userRepo.FindByID, userOwnership)
	if err != nil {
		return nil, err
	}

	if input.Name == nil && input.Email == nil && input.Password == nil {
		return user, nil
	}

	var passwordHash string
	if input.Password != nil {
		if passwordHash, err = srv.hashPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	user.UpdatedAt = srv.now()

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Update(ctx, user); err != nil {
			return err
		}
		if passwordHash == "" {
			return nil
		}

		return repoFactory.CredentialRepo().Replace(ctx, &entity.Credential{
			UserID:       user.ID,
			Email:        user.Email,
			PasswordHash: passwordHash,
			UpdatedAt:    user.UpdatedAt,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, domainerrors.ErrUserAlreadyExists
		case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, repository.ErrCredentialNotFound):
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", user.ID), slog.Bool("passwordChanged", passwordHash != ""))

	return user, nil
}

// DeleteUser removes the caller's account and credential. Events and jobs they created remain.
func (srv *userService) DeleteUser(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if _, err := authorizeOwner(ctx, actor, id, srv.userRepo.FindByID, userOwnership); err != nil {
		return err
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}
