package auth

import (
	"strings"
	"testing"
	"time"

	"bulletin/config"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestJWTService(t *testing.T) (*jwtService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(testSecret, clock.Now)
	require.NoError(t, err)

	return svc, clock
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	svc, err := NewJWTService(&config.Config{SecretKey: config.SecretKey{Access: testSecret}})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc, clock := newTestJWTService(t)

	token, expiresAt, err := svc.Issue("a@example.com", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(time.Minute), expiresAt)
	assert.Len(t, strings.Split(token, "."), 3)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", subject)
}

func TestJWTService_Issue_DefaultTTL(t *testing.T) {
	svc, clock := newTestJWTService(t)

	_, expiresAt, err := svc.Issue("a@example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(service.DefaultTokenTTL), expiresAt)
}

func TestJWTService_Issue_EmptySubject(t *testing.T) {
	svc, _ := newTestJWTService(t)

	_, _, err := svc.Issue("", time.Minute)
	assert.Error(t, err)
}

func TestJWTService_Validate_Expiry(t *testing.T) {
	svc, clock := newTestJWTService(t)
	start := clock.now

	token, _, err := svc.Issue("a@example.com", time.Minute)
	require.NoError(t, err)

	clock.now = start.Add(59 * time.Second)
	_, err = svc.Validate(token)
	require.NoError(t, err)

	clock.now = start.Add(time.Minute)
	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))

	clock.now = start.Add(time.Hour)
	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestJWTService_Validate_TamperedSignature(t *testing.T) {
	svc, _ := newTestJWTService(t)

	token, _, err := svc.Issue("a@example.com", time.Minute)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	replacement := byte('A')
	if token[sigStart] == 'A' {
		replacement = 'B'
	}
	tampered := token[:sigStart] + string(replacement) + token[sigStart+1:]

	_, err = svc.Validate(tampered)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestJWTService_Validate_TamperedPayload(t *testing.T) {
	svc, _ := newTestJWTService(t)
	other, _, err := svc.Issue("b@example.com", time.Minute)
	require.NoError(t, err)
	token, _, err := svc.Issue("a@example.com", time.Minute)
	require.NoError(t, err)

	tokenParts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	spliced := tokenParts[0] + "." + otherParts[1] + "." + tokenParts[2]

	_, err = svc.Validate(spliced)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestJWTService_Validate_Rejects(t *testing.T) {
	svc, clock := newTestJWTService(t)

	foreign, err := newJWTService("some-other-secret", clock.Now)
	require.NoError(t, err)
	foreignToken, _, err := foreign.Issue("a@example.com", time.Minute)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "a@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Minute)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512Token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@example.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "clearly-not-a-jwt-token-format"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreignToken},
		{name: "alg none", token: noneToken},
		{name: "other algorithm", token: hs512Token},
		{name: "missing exp", token: noExpiry},
		{name: "missing sub", token: noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := svc.Validate(tt.token)
			assert.Empty(t, subject)
			assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
		})
	}
}
