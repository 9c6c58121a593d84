package auth

import (
	"testing"

	"medico/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPService_GenerateUsesConfiguredLength(t *testing.T) {
	cfg := newTokenConfig()
	cfg.Auth.OTPLength = 4
	svc := NewOTPService(cfg)

	code, err := svc.Generate()
	require.NoError(t, err)
	assert.Len(t, code, 4)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestOTPService_VerifyBindsCodeToPhone(t *testing.T) {
	svc := NewOTPService(newTokenConfig())

	hash := svc.Hash("+919000000001", "123456")
	assert.NotContains(t, hash, "123456")
	assert.True(t, svc.Verify("+919000000001", "123456", hash))
	assert.False(t, svc.Verify("+919000000001", "654321", hash))
	assert.False(t, svc.Verify("+919000000002", "123456", hash))
}

func TestOTPService_DefaultLength(t *testing.T) {
	code, err := NewOTPService(&config.Config{}).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
