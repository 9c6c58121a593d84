package impl

import (
	"io"
	"log/slog"
	"time"

	"medico/config"
	"medico/internal/infra/clock"
)

var testNow = time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() *clock.Fixed {
	return &clock.Fixed{T: testNow}
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			MaxActiveSessions: 3,
			AccessTTL:         15 * time.Minute,
			RefreshTTL:        24 * time.Hour,
			OTPTTL:            5 * time.Minute,
			OTPLength:         6,
			PasswordResetTTL:  time.Hour,
			PasswordResetURL:  "https://pharmacy.test/reset",
		},
		Storage: &config.StorageConfig{MaxUploadSize: 1 << 20, MaxFiles: 2},
		Invoice: &config.InvoiceConfig{NumberPrefix: "MED"},
	}
	cfg.Env.Debug = true

	return cfg
}

func ptr[T any](v T) *T {
	return &v
}
