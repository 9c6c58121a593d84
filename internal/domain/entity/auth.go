package entity

import "time"

// Session is a persisted login. The refresh token is stored only as a hash.
type Session struct {
	ID               int64
	UserID           int64
	RefreshTokenHash string
	DeviceInfo       string
	IPAddress        string
	ExpiresAt        time.Time
	IsRevoked        bool
	CreatedAt        time.Time
}

// IsActive reports whether the session can still mint access tokens at now.
func (s *Session) IsActive(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}

// RevokedToken blacklists an access token by its jti until it would have expired anyway.
type RevokedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
	RevokedAt time.Time
}

// OTPCode is a pending one-time password for a phone number.
type OTPCode struct {
	PhoneNumber string
	CodeHash    string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IsExpired reports whether the code can no longer be used at now.
func (o *OTPCode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// PasswordReset is a single-use reset request for an administrator account.
type PasswordReset struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // Access token lifetime in seconds.
}
