package auth

import (
	"testing"
	"time"

	"medico/config"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/infra/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{AccessTTL: 10 * time.Minute, RefreshTTL: time.Hour}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, err := NewJWTService(newTokenConfig(), &clock.Fixed{T: now})
	require.NoError(t, err)

	issued, err := svc.GenerateAccessToken(42, []string{"admin:read", "role:write"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)
	assert.Equal(t, now.Add(10*time.Minute), issued.ExpiresAt)

	claims, err := svc.ValidateAccessToken(issued.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, issued.JTI, claims.ID)
	assert.Equal(t, []string{"admin:read", "role:write"}, claims.Scopes)
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig(), &clock.Fixed{T: time.Now().UTC()})
	require.NoError(t, err)

	refresh, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)
	access, err := svc.GenerateAccessToken(7, nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh.Token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = svc.ValidateRefreshToken(access.Token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	claims, err := svc.ValidateRefreshToken(refresh.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.Scopes)
	assert.NotEqual(t, access.JTI, refresh.JTI)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	fixed := &clock.Fixed{T: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewJWTService(newTokenConfig(), fixed)
	require.NoError(t, err)

	issued, err := svc.GenerateAccessToken(1, nil)
	require.NoError(t, err)

	fixed.T = fixed.T.Add(11 * time.Minute)
	_, err = svc.ValidateAccessToken(issued.Token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig(), clock.NewSystemClock())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestJWTService_RequiresDistinctSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{}, clock.NewSystemClock())
	assert.Error(t, err)

	cfg := newTokenConfig()
	cfg.SecretKey.Refresh = cfg.SecretKey.Access
	_, err = NewJWTService(cfg, clock.NewSystemClock())
	assert.Error(t, err)
}

func TestJWTService_HashTokenIsStable(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig(), clock.NewSystemClock())
	require.NoError(t, err)

	assert.Equal(t, svc.HashToken("abc"), svc.HashToken("abc"))
	assert.NotEqual(t, svc.HashToken("abc"), svc.HashToken("abd"))
	assert.Len(t, svc.HashToken("abc"), 64)
}
