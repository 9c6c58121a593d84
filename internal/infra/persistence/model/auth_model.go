package model

import "time"

// SessionModel mirrors the 'sessions' table. Only the refresh token hash is stored.
type SessionModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	UserID           int64     `gorm:"not null;index"`
	RefreshTokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	DeviceInfo       string    `gorm:"type:varchar(255)"`
	IPAddress        string    `gorm:"type:varchar(64)"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	IsRevoked        bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// RevokedTokenModel mirrors the append-only 'revoked_tokens' table.
type RevokedTokenModel struct {
	JTI       string    `gorm:"column:jti;type:varchar(64);primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RevokedTokenModel) TableName() string {
	return "revoked_tokens"
}

// OTPCodeModel mirrors the 'otp_codes' table, the persisted TTL store of one-time passwords.
type OTPCodeModel struct {
	PhoneNumber string    `gorm:"type:varchar(20);primaryKey"`
	CodeHash    string    `gorm:"type:varchar(255);not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OTPCodeModel) TableName() string {
	return "otp_codes"
}

// PasswordResetModel mirrors the 'password_resets' table.
type PasswordResetModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PasswordResetModel) TableName() string {
	return "password_resets"
}
