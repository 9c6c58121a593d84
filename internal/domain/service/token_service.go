package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens. The subject and the jti
// live in the registered claims.
type Claims struct {
	Scopes []string `json:"scopes,omitempty"`
	Type   string   `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject of the token.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// IssuedToken is a signed token along with the identifiers needed to revoke it.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken signs a short-lived token for userID carrying scopes.
	GenerateAccessToken(userID int64, scopes []string) (*IssuedToken, error)

	// GenerateRefreshToken signs a long-lived token with the refresh secret.
	GenerateRefreshToken(userID int64) (*IssuedToken, error)

	// ValidateAccessToken checks signature, expiry and type of an access token.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks signature, expiry and type of a refresh token.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns a stable digest suitable for storing a token at rest.
	HashToken(token string) string

	// AccessTokenDuration returns the configured lifetime of access tokens.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured lifetime of refresh tokens.
	RefreshTokenDuration() time.Duration
}
