package mockusecase

import (
	"context"
	"testing"

	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase is a mock implementation of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a mock that asserts its expectations when the test ends.
func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthUsecase) AdminLogin(ctx context.Context, input *usecase.AdminLoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)

	return get[*usecase.LoginOutput](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) RegisterAdmin(ctx context.Context, input *usecase.RegisterAdminInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	return get[*entity.User](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) AdminLogout(ctx context.Context, principal *entity.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

func (m *MockAuthUsecase) ForgotPassword(ctx context.Context, email string) (*usecase.PasswordResetIssued, error) {
	args := m.Called(ctx, email)

	return get[*usecase.PasswordResetIssued](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAuthUsecase) RequestOTP(ctx context.Context, phoneNumber string) (*usecase.OTPIssued, error) {
	args := m.Called(ctx, phoneNumber)

	return get[*usecase.OTPIssued](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) LoginWithOTP(ctx context.Context, input *usecase.OTPLoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)

	return get[*usecase.LoginOutput](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)

	return get[*entity.TokenPair](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, principal *entity.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

func (m *MockAuthUsecase) Me(ctx context.Context, principal *entity.Principal) (*usecase.MeOutput, error) {
	args := m.Called(ctx, principal)

	return get[*usecase.MeOutput](args, 0), args.Error(1)
}

func (m *MockAuthUsecase) Authorize(ctx context.Context, accessToken string, required ...string) (*entity.Principal, error) {
	callArgs := []any{ctx, accessToken}
	for _, r := range required {
		callArgs = append(callArgs, r)
	}
	args := m.Called(callArgs...)

	return get[*entity.Principal](args, 0), args.Error(1)
}
