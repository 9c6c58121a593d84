package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
		},
		"http": map[string]any{
			"requestTimeout": "30s",
		},
		"storage": map[string]any{
			"bucketUrl": "",
		},
		"auth": map[string]any{
			"otpTTL": "5m",
		},
		"invoice": map[string]any{
			"sellerGstin": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "HTTP_REQUESTTIMEOUT", want: "http.requestTimeout"},
		{envKey: "STORAGE_BUCKETURL", want: "storage.bucketUrl"},
		{envKey: "AUTH_OTPTTL", want: "auth.otpTTL"},
		{envKey: "INVOICE_SELLERGSTIN", want: "invoice.sellerGstin"},
		{envKey: "PUBSUB_PROVIDER", want: "pubsub.provider"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultRequestTimeout, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 6, cfg.Auth.OTPLength)
	assert.Equal(t, 15*time.Minute, cfg.Auth.PasswordResetTTL)
	assert.Equal(t, "customer", cfg.Auth.CustomerRole)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, defaultMaxFiles, cfg.Storage.MaxFiles)
	assert.Equal(t, "none", cfg.PubSub.Provider)
	assert.Equal(t, "INV", cfg.Invoice.NumberPrefix)
}

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("http:\n  port: 8080\n  requestTimeout: 30s\nstorage:\n  bucketUrl: mem://\n  maxFiles: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yaml, 0o600))
	t.Chdir(dir)
	t.Setenv("HTTP_REQUESTTIMEOUT", "45s")
	t.Setenv("STORAGE_MAXFILES", "3")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTP.RequestTimeout)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, 3, cfg.Storage.MaxFiles)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}
