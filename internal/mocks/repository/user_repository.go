package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations when the test ends.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)

	return get[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)

	return get[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)

	return get[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)

	return args.Error(0)
}

// MockRoleRepository is a mock implementation of repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

// NewMockRoleRepository creates a mock that asserts its expectations when the test ends.
func NewMockRoleRepository(t *testing.T) *MockRoleRepository {
	m := &MockRoleRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRoleRepository) CreateRole(ctx context.Context, role *entity.Role) error {
	args := m.Called(ctx, role)

	return args.Error(0)
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, id int64) (*entity.Role, error) {
	args := m.Called(ctx, id)

	return get[*entity.Role](args, 0), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	args := m.Called(ctx, name)

	return get[*entity.Role](args, 0), args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	args := m.Called(ctx)

	return get[[]*entity.Role](args, 0), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, role *entity.Role) error {
	args := m.Called(ctx, role)

	return args.Error(0)
}

func (m *MockRoleRepository) ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	args := m.Called(ctx, roleID, permissionIDs)

	return args.Error(0)
}

func (m *MockRoleRepository) FindPermissionsByNames(ctx context.Context, names []string) ([]entity.Permission, error) {
	args := m.Called(ctx, names)

	return get[[]entity.Permission](args, 0), args.Error(1)
}
