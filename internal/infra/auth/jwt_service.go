package auth

import (
	"time"

	"bulletin/config"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/service"
	"bulletin/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// jwtService signs HS256 tokens whose subject is the user's email.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService takes the signing secret from secretKey.access.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg.SecretKey.Access, time.Now)
}

func newJWTService(secret string, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: []byte(secret), now: now}, nil
}

func (s *jwtService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token subject must not be empty")
	}
	if ttl <= 0 {
		ttl = service.DefaultTokenTTL
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (s *jwtService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", domainerrors.ErrUnauthenticated.WrapMessage(err.Error())
	}
	if !token.Valid || claims.Subject == "" {
		return "", domainerrors.ErrUnauthenticated.WrapMessage("token has no subject")
	}

	return claims.Subject, nil
}
