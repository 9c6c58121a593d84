package auth

import (
	"testing"

	"medico/config"
	domainerrors "medico/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasherConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        64,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		},
	}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig())

	hash, err := hasher.Hash("Strong#Pass9")
	require.NoError(t, err)
	assert.NotEqual(t, "Strong#Pass9", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Check("Strong#Pass9", hash))
	assert.False(t, hasher.Check("Wrong#Pass9", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("Strong#Pass9", "invalid_hash"))
}

func TestBcryptHasher_DefaultCostWhenUnset(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("anything-goes")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig())

	for _, password := range []string{"Strong#Pass9", "MySecure@Key1", "Pässphräse123!"} {
		assert.NoError(t, hasher.ValidatePasswordStrength(password), password)
	}

	tests := []struct {
		password string
		reason   string
	}{
		{"Ab1!", "too short"},
		{"STRONG#PASS9", "lowercase"},
		{"strong#pass9", "uppercase"},
		{"Strong#Passx", "number"},
		{"StrongPass9x", "special"},
		{"Password#123", "forbidden"},
		{"MyAdmin#123", "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}
