package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strings"

	"medico/config"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	otpIterations = 10000
	otpKeyLength  = 32
)

// otpService derives OTP hashes with PBKDF2 salted by the phone number and the access secret.
type otpService struct {
	length int
	pepper []byte
}

// NewOTPService is the constructor for otpService.
func NewOTPService(cfg *config.Config) service.OTPService {
	length := 6
	if cfg.Auth != nil && cfg.Auth.OTPLength > 0 {
		length = cfg.Auth.OTPLength
	}

	return &otpService{length: length, pepper: []byte(cfg.SecretKey.Access)}
}

// Generate draws a uniformly random numeric code.
func (s *otpService) Generate() (string, error) {
	var b strings.Builder
	b.Grow(s.length)
	ten := big.NewInt(10)
	for range s.length {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate otp")
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}

func (s *otpService) Hash(phone, code string) string {
	salt := append([]byte(phone+":"), s.pepper...)
	key := pbkdf2.Key([]byte(code), salt, otpIterations, otpKeyLength, sha256.New)

	return hex.EncodeToString(key)
}

func (s *otpService) Verify(phone, code, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(s.Hash(phone, code)), []byte(hash)) == 1
}
