package mockservice

import (
	"testing"
	"time"

	"medico/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock that asserts its expectations when the test ends.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateAccessToken(userID int64, scopes []string) (*service.IssuedToken, error) {
	args := m.Called(userID, scopes)

	return get[*service.IssuedToken](args, 0), args.Error(1)
}

func (m *MockTokenService) GenerateRefreshToken(userID int64) (*service.IssuedToken, error) {
	args := m.Called(userID)

	return get[*service.IssuedToken](args, 0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	return get[*service.Claims](args, 0), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	return get[*service.Claims](args, 0), args.Error(1)
}

func (m *MockTokenService) HashToken(token string) string {
	args := m.Called(token)

	return args.String(0)
}

func (m *MockTokenService) AccessTokenDuration() time.Duration {
	args := m.Called()

	return get[time.Duration](args, 0)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return get[time.Duration](args, 0)
}
