package mockservice

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock that asserts its expectations when the test ends.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password string, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	args := m.Called(password)

	return args.Error(0)
}

// MockOTPService is a mock implementation of service.OTPService.
type MockOTPService struct {
	mock.Mock
}

// NewMockOTPService creates a mock that asserts its expectations when the test ends.
func NewMockOTPService(t *testing.T) *MockOTPService {
	m := &MockOTPService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOTPService) Generate() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *MockOTPService) Hash(phone string, code string) string {
	args := m.Called(phone, code)

	return args.String(0)
}

func (m *MockOTPService) Verify(phone string, code string, hash string) bool {
	args := m.Called(phone, code, hash)

	return args.Bool(0)
}
