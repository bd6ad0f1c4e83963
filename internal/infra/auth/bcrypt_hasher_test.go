package auth

import (
	"strings"
	"testing"

	"bulletin/config"
	domainerrors "bulletin/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(policy config.PasswordStrengthConfig) *bcryptHasher {
	return NewBcryptHasherWithCost(bcrypt.MinCost, policy).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})

	hash, err := hasher.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	assert.True(t, hasher.Check("p1", hash))
	assert.False(t, hasher.Check("p2", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret", first))
	assert.True(t, hasher.Check("secret", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})

	assert.NotPanics(t, func() {
		assert.False(t, hasher.Check("p1", ""))
		assert.False(t, hasher.Check("p1", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Check("p1", "$2a$04$short"))
	})
}

func TestBcryptHasher_HashRejectsOverlongPassword(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})

	_, err := hasher.Hash(strings.Repeat("a", 73))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	_, err = hasher.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestNewBcryptHasher_UsesConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 8},
	}).(*bcryptHasher)

	assert.Equal(t, bcrypt.MinCost, hasher.cost)
	assert.Equal(t, 8, hasher.policy.MinLength)
	assert.Equal(t, maxBcryptPasswordBytes, hasher.policy.MaxLength)

	defaults := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, defaults.cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	strict := config.PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}

	tests := []struct {
		name     string
		policy   config.PasswordStrengthConfig
		password string
		wantErr  bool
	}{
		{name: "permissive accepts short", policy: config.PasswordStrengthConfig{}, password: "p1"},
		{name: "permissive rejects empty", policy: config.PasswordStrengthConfig{}, password: "", wantErr: true},
		{name: "permissive rejects overlong", policy: config.PasswordStrengthConfig{}, password: strings.Repeat("x", 73), wantErr: true},
		{name: "strict accepts strong", policy: strict, password: "StrongPass123!"},
		{name: "strict too short", policy: strict, password: "Sp1!", wantErr: true},
		{name: "strict no uppercase", policy: strict, password: "strongpass123!", wantErr: true},
		{name: "strict no lowercase", policy: strict, password: "STRONGPASS123!", wantErr: true},
		{name: "strict no digit", policy: strict, password: "StrongPass!!", wantErr: true},
		{name: "strict no special", policy: strict, password: "StrongPass123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestHasher(tt.policy).ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

				return
			}
			assert.NoError(t, err)
		})
	}
}
