package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates a mock that asserts its expectations when the test ends.
func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) FindManagementProfile(ctx context.Context, userID int64) (*entity.ManagementProfile, error) {
	args := m.Called(ctx, userID)

	return get[*entity.ManagementProfile](args, 0), args.Error(1)
}

func (m *MockProfileRepository) SaveManagementProfile(ctx context.Context, profile *entity.ManagementProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) FindCustomerProfile(ctx context.Context, userID int64) (*entity.CustomerProfile, error) {
	args := m.Called(ctx, userID)

	return get[*entity.CustomerProfile](args, 0), args.Error(1)
}

func (m *MockProfileRepository) SaveCustomerProfile(ctx context.Context, profile *entity.CustomerProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *MockProfileRepository) FindAddressByID(ctx context.Context, id int64) (*entity.Address, error) {
	args := m.Called(ctx, id)

	return get[*entity.Address](args, 0), args.Error(1)
}

func (m *MockProfileRepository) ListAddresses(ctx context.Context, userID int64) ([]*entity.Address, error) {
	args := m.Called(ctx, userID)

	return get[[]*entity.Address](args, 0), args.Error(1)
}

func (m *MockProfileRepository) CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockProfileRepository) FindFamilyMemberByID(ctx context.Context, id int64) (*entity.FamilyMember, error) {
	args := m.Called(ctx, id)

	return get[*entity.FamilyMember](args, 0), args.Error(1)
}

func (m *MockProfileRepository) ListFamilyMembers(ctx context.Context, userID int64) ([]*entity.FamilyMember, error) {
	args := m.Called(ctx, userID)

	return get[[]*entity.FamilyMember](args, 0), args.Error(1)
}

func (m *MockProfileRepository) UpdateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockProfileRepository) SoftDeleteFamilyMember(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}
