// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"medico/internal/domain/entity"
)

// --- Input DTOs ---

// ClientInfo identifies the device a login comes from.
type ClientInfo struct {
	DeviceInfo string
	IPAddress  string
}

// AdminLoginInput defines the data required for an administrator to log in.
type AdminLoginInput struct {
	Email    string
	Password string
	Client   ClientInfo
}

// RegisterAdminInput defines the data required to create an administrator.
// An empty role name means the admin role.
type RegisterAdminInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	RoleName    string
}

// OTPLoginInput defines the data required for a customer to log in.
type OTPLoginInput struct {
	PhoneNumber string
	Code        string
	Client      ClientInfo
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Tokens *entity.TokenPair `json:"tokens"`
	User   *entity.User      `json:"user"`
}

// OTPIssued describes a freshly issued OTP. Code is only filled in debug mode.
type OTPIssued struct {
	PhoneNumber string    `json:"phone_number"`
	ExpiresAt   time.Time `json:"expires_at"`
	Code        string    `json:"code,omitempty"`
}

// PasswordResetIssued describes a reset request. Link is only filled in debug mode.
type PasswordResetIssued struct {
	ExpiresAt time.Time `json:"expires_at"`
	Link      string    `json:"reset_link,omitempty"`
}

// MeOutput is the authenticated caller with the scopes honoured for them.
type MeOutput struct {
	User   *entity.User  `json:"user"`
	Scopes entity.Scopes `json:"scopes"`
}

// AuthUsecase defines the authentication flows of administrators and customers.
type AuthUsecase interface {
	// AdminLogin checks email and password and opens a session.
	AdminLogin(ctx context.Context, input *AdminLoginInput) (*LoginOutput, error)

	// RegisterAdmin creates a staff account. Returns ErrUserAlreadyExists on a duplicate email.
	RegisterAdmin(ctx context.Context, input *RegisterAdminInput) (*entity.User, error)

	// AdminLogout revokes the caller's access token and every session of the account.
	AdminLogout(ctx context.Context, principal *entity.Principal) error

	// ForgotPassword creates a single-use reset token for an administrator.
	ForgotPassword(ctx context.Context, email string) (*PasswordResetIssued, error)

	// ResetPassword consumes a reset token and stores the new password.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// RequestOTP issues a one-time password for a phone number.
	RequestOTP(ctx context.Context, phoneNumber string) (*OTPIssued, error)

	// LoginWithOTP consumes the OTP, creating the customer on first login.
	LoginWithOTP(ctx context.Context, input *OTPLoginInput) (*LoginOutput, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// Logout revokes the caller's access token and invalidates their sessions.
	Logout(ctx context.Context, principal *entity.Principal) error

	// Me returns the caller with the scopes honoured for the current token.
	Me(ctx context.Context, principal *entity.Principal) (*MeOutput, error)

	// Authorize validates an access token and checks that it grants every required scope.
	// The scopes of the principal are the union of the role's and the token's.
	Authorize(ctx context.Context, accessToken string, required ...string) (*entity.Principal, error)
}
