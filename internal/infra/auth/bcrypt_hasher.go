// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"medico/config"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

var forbiddenPasswordWords = []string{"password", "admin", "medico", "qwerty"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// Cost and strength policy come from the auth and passwordStrength config sections.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.PasswordStrengthConfig{MinLength: 8}
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the configured length and character class rules.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	length := len([]rune(password))
	switch {
	case h.policy.MinLength > 0 && length < h.policy.MinLength:
		return domainerrors.ErrWeakPassword.WrapMessage("password is too short")
	case h.policy.MaxLength > 0 && length > h.policy.MaxLength:
		return domainerrors.ErrWeakPassword.WrapMessage("password is too long")
	case h.policy.RequireUppercase && !hasRune(password, unicode.IsUpper):
		return domainerrors.ErrWeakPassword.WrapMessage("password must contain an uppercase letter")
	case h.policy.RequireLowercase && !hasRune(password, unicode.IsLower):
		return domainerrors.ErrWeakPassword.WrapMessage("password must contain a lowercase letter")
	case h.policy.RequireNumbers && !hasRune(password, unicode.IsDigit):
		return domainerrors.ErrWeakPassword.WrapMessage("password must contain a number")
	case h.policy.RequireSpecial && !hasRune(password, isSpecial):
		return domainerrors.ErrWeakPassword.WrapMessage("password must contain a special character")
	case containsForbiddenWord(password):
		return domainerrors.ErrWeakPassword.WrapMessage("password contains a forbidden word")
	}

	return nil
}

func hasRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsForbiddenWord(password string) bool {
	lower := strings.ToLower(password)
	for _, word := range forbiddenPasswordWords {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
