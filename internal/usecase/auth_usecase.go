// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"bulletin/internal/domain/entity"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// SessionOutput is an issued access token.
type SessionOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthUsecase verifies credentials, issues tokens and resolves bearer tokens back to users.
type AuthUsecase interface {
	// Authenticate returns the user owning email when password matches.
	// Unknown emails and wrong passwords fail identically.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	// IssueSession signs an access token whose subject is the user's email.
	IssueSession(user *entity.User) (*SessionOutput, error)

	// Login is Authenticate followed by IssueSession.
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)

	// AuthenticateRequest validates token and loads the user it names.
	AuthenticateRequest(ctx context.Context, token string) (*entity.User, error)
}
