package service

import "time"

// DefaultTokenTTL applies when Issue is called without a positive lifetime.
const DefaultTokenTTL = 15 * time.Minute

// TokenService issues and validates signed, time-limited bearer tokens.
type TokenService interface {
	// Issue signs a token for subject that expires after ttl.
	Issue(subject string, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Validate verifies signature and expiry and returns the subject.
	Validate(token string) (subject string, err error)
}
