// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// ValidatePasswordStrength checks a plaintext password against the configured policy.
	ValidatePasswordStrength(password string) error
}

// OTPService issues and checks one-time passwords. Codes are never stored in plaintext.
type OTPService interface {
	// Generate returns a fresh numeric code of the configured length.
	Generate() (string, error)

	// Hash derives the at-rest representation of code for phone.
	Hash(phone, code string) string

	// Verify reports whether code matches the stored hash for phone.
	Verify(phone, code, hash string) bool
}
