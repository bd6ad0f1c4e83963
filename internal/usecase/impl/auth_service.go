package impl

import (
	"context"
	"log/slog"
	"time"

	"bulletin/config"
	deliverycontext "bulletin/internal/delivery/context"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/domain/service"
	"bulletin/internal/errors"
	"bulletin/internal/usecase"

	"go.uber.org/fx"
)

type authService struct {
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Config         *config.Config
	Logger         *slog.Logger
}

func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:       params.UserRepo,
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		tokenTTL:       params.Config.Auth.AccessTokenTTL(),
		logger:         params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	credential, err := srv.credentialRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			srv.log(ctx).Info("Login rejected", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find credential")
	}

	if !srv.hasher.Check(password, credential.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load authenticated user")
	}

	return user, nil
}

func (srv *authService) IssueSession(user *entity.User) (*usecase.SessionOutput, error) {
	token, expiresAt, err := srv.tokenService.Issue(user.Email, srv.tokenTTL)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.SessionOutput{
		AccessToken: token,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	user, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	session, err := srv.IssueSession(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return session, nil
}

// AuthenticateRequest fails with ErrUnauthenticated for bad tokens and for subjects that no longer exist.
func (srv *authService) AuthenticateRequest(ctx context.Context, token string) (*entity.User, error) {
	subject, err := srv.tokenService.Validate(token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnauthenticated) {
			return nil, err
		}

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	return user, nil
}
