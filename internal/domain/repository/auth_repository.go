package repository

import (
	"context"
	"time"

	"medico/internal/domain/entity"
)

// AuthRepository defines the persistence of sessions, revoked tokens and password resets.
type AuthRepository interface {
	// CreateSession persists a new login session.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindSessionByTokenHash retrieves a session by the hash of its refresh token.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// RevokeUserSessions marks every session of a user as revoked.
	RevokeUserSessions(ctx context.Context, userID int64) error

	// RevokeExcessSessions revokes the oldest active sessions of a user so at most keep remain.
	RevokeExcessSessions(ctx context.Context, userID int64, keep int, now time.Time) error

	// RevokeToken adds a jti to the blacklist. Revoking the same jti twice is not an error.
	RevokeToken(ctx context.Context, token *entity.RevokedToken) error

	// IsTokenRevoked reports whether a jti is blacklisted. Always reads from the primary.
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// CreatePasswordReset persists a reset request.
	CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error

	// FindPasswordResetByTokenHash retrieves a reset request by the hash of its token.
	FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error)

	// MarkPasswordResetUsed consumes a reset request.
	MarkPasswordResetUsed(ctx context.Context, id int64) error
}

// OTPRepository is the persisted TTL store of one-time passwords, keyed by phone number.
type OTPRepository interface {
	// SaveOTP stores the code for its phone number, replacing any pending one.
	SaveOTP(ctx context.Context, otp *entity.OTPCode) error

	// FindOTP returns the pending code for a phone number. Always reads from the primary.
	FindOTP(ctx context.Context, phone string) (*entity.OTPCode, error)

	// DeleteOTP consumes the pending code of a phone number.
	DeleteOTP(ctx context.Context, phone string) error

	// DeleteExpiredOTPs purges codes that expired before now and returns how many were removed.
	DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}
