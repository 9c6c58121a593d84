package mockrepository

import (
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAuthRepository is a mock implementation of repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

// NewMockAuthRepository creates a mock that asserts its expectations when the test ends.
func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockAuthRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	args := m.Called(ctx, tokenHash)

	return get[*entity.Session](args, 0), args.Error(1)
}

func (m *MockAuthRepository) RevokeUserSessions(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockAuthRepository) RevokeExcessSessions(ctx context.Context, userID int64, keep int, now time.Time) error {
	args := m.Called(ctx, userID, keep, now)

	return args.Error(0)
}

func (m *MockAuthRepository) RevokeToken(ctx context.Context, token *entity.RevokedToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockAuthRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)

	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepository) CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error {
	args := m.Called(ctx, reset)

	return args.Error(0)
}

func (m *MockAuthRepository) FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)

	return get[*entity.PasswordReset](args, 0), args.Error(1)
}

func (m *MockAuthRepository) MarkPasswordResetUsed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockOTPRepository is a mock implementation of repository.OTPRepository.
type MockOTPRepository struct {
	mock.Mock
}

// NewMockOTPRepository creates a mock that asserts its expectations when the test ends.
func NewMockOTPRepository(t *testing.T) *MockOTPRepository {
	m := &MockOTPRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOTPRepository) SaveOTP(ctx context.Context, otp *entity.OTPCode) error {
	args := m.Called(ctx, otp)

	return args.Error(0)
}

func (m *MockOTPRepository) FindOTP(ctx context.Context, phone string) (*entity.OTPCode, error) {
	args := m.Called(ctx, phone)

	return get[*entity.OTPCode](args, 0), args.Error(1)
}

func (m *MockOTPRepository) DeleteOTP(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)

	return args.Error(0)
}

func (m *MockOTPRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return get[int64](args, 0), args.Error(1)
}
