package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"medico/config"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "medico"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	clock         service.Clock
}

// NewJWTService is the constructor for jwtService.
// Both secrets are required and must differ so a refresh token can never pass as an access token.
func NewJWTService(cfg *config.Config, clock service.Clock) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	s := &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     15 * time.Minute,
		refreshTTL:    7 * 24 * time.Hour,
		clock:         clock,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTTL > 0 {
			s.accessTTL = cfg.Auth.AccessTTL
		}
		if cfg.Auth.RefreshTTL > 0 {
			s.refreshTTL = cfg.Auth.RefreshTTL
		}
	}

	return s, nil
}

// GenerateAccessToken signs a short-lived token carrying the caller's scopes.
func (s *jwtService) GenerateAccessToken(userID int64, scopes []string) (*service.IssuedToken, error) {
	return s.generateToken(userID, scopes, s.accessTTL, s.accessSecret, service.TokenTypeAccess)
}

// GenerateRefreshToken signs a long-lived token with the refresh secret.
func (s *jwtService) GenerateRefreshToken(userID int64) (*service.IssuedToken, error) {
	return s.generateToken(userID, nil, s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
}

// ValidateAccessToken parses an access token and checks its type.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validate(tokenString, s.accessSecret, service.TokenTypeAccess)
}

// ValidateRefreshToken parses a refresh token and checks its type.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.validate(tokenString, s.refreshSecret, service.TokenTypeRefresh)
}

// HashToken returns the hex sha256 of a token, used to store refresh and reset tokens at rest.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// AccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) generateToken(userID int64, scopes []string, ttl time.Duration, secret []byte, tokenType string) (*service.IssuedToken, error) {
	now := s.clock.Now()
	jti := uuid.NewString()
	expiresAt := now.Add(ttl)

	claims := &service.Claims{
		Scopes: scopes,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &service.IssuedToken{Token: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (s *jwtService) validate(tokenString string, secret []byte, tokenType string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to parse token")
	}
	if claims.Type != tokenType || claims.Subject == "" || claims.ID == "" {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected token claims")
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("malformed subject")
	}

	return claims, nil
}
