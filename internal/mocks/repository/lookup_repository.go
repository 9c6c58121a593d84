package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockLookupRepository is a mock implementation of repository.LookupRepository.
type MockLookupRepository struct {
	mock.Mock
}

// NewMockLookupRepository creates a mock that asserts its expectations when the test ends.
func NewMockLookupRepository(t *testing.T) *MockLookupRepository {
	m := &MockLookupRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLookupRepository) CreateLookup(ctx context.Context, lookup *entity.Lookup) error {
	args := m.Called(ctx, lookup)

	return args.Error(0)
}

func (m *MockLookupRepository) FindLookupByID(ctx context.Context, kind entity.LookupKind, id int64) (*entity.Lookup, error) {
	args := m.Called(ctx, kind, id)

	return get[*entity.Lookup](args, 0), args.Error(1)
}

func (m *MockLookupRepository) FindLookupByName(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error) {
	args := m.Called(ctx, kind, name)

	return get[*entity.Lookup](args, 0), args.Error(1)
}

func (m *MockLookupRepository) ListLookups(ctx context.Context, kind entity.LookupKind, page entity.Page) ([]*entity.Lookup, int64, error) {
	args := m.Called(ctx, kind, page)

	return get[[]*entity.Lookup](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockLookupRepository) UpdateLookup(ctx context.Context, lookup *entity.Lookup) error {
	args := m.Called(ctx, lookup)

	return args.Error(0)
}

func (m *MockLookupRepository) SoftDeleteLookup(ctx context.Context, kind entity.LookupKind, id int64, deletedBy int64) error {
	args := m.Called(ctx, kind, id, deletedBy)

	return args.Error(0)
}

func (m *MockLookupRepository) MissingLookupIDs(ctx context.Context, kind entity.LookupKind, ids []int64) ([]int64, error) {
	args := m.Called(ctx, kind, ids)

	return get[[]int64](args, 0), args.Error(1)
}
