package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockMedicineRepository is a mock implementation of repository.MedicineRepository.
type MockMedicineRepository struct {
	mock.Mock
}

// NewMockMedicineRepository creates a mock that asserts its expectations when the test ends.
func NewMockMedicineRepository(t *testing.T) *MockMedicineRepository {
	m := &MockMedicineRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMedicineRepository) CreateMedicine(ctx context.Context, medicine *entity.Medicine) error {
	args := m.Called(ctx, medicine)

	return args.Error(0)
}

func (m *MockMedicineRepository) FindMedicineByID(ctx context.Context, id int64) (*entity.Medicine, error) {
	args := m.Called(ctx, id)

	return get[*entity.Medicine](args, 0), args.Error(1)
}

func (m *MockMedicineRepository) ListMedicines(ctx context.Context, filter entity.MedicineFilter, page entity.Page) ([]*entity.Medicine, int64, error) {
	args := m.Called(ctx, filter, page)

	return get[[]*entity.Medicine](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockMedicineRepository) UpdateMedicine(ctx context.Context, medicine *entity.Medicine) error {
	args := m.Called(ctx, medicine)

	return args.Error(0)
}

func (m *MockMedicineRepository) SoftDeleteMedicine(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

func (m *MockMedicineRepository) ReplaceLinks(ctx context.Context, medicineID int64, kind entity.LookupKind, targetIDs []int64, deletedBy int64) error {
	args := m.Called(ctx, medicineID, kind, targetIDs, deletedBy)

	return args.Error(0)
}

func (m *MockMedicineRepository) MissingMedicineIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)

	return get[[]int64](args, 0), args.Error(1)
}

// MockBatchRepository is a mock implementation of repository.BatchRepository.
type MockBatchRepository struct {
	mock.Mock
}

// NewMockBatchRepository creates a mock that asserts its expectations when the test ends.
func NewMockBatchRepository(t *testing.T) *MockBatchRepository {
	m := &MockBatchRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBatchRepository) CreateBatch(ctx context.Context, batch *entity.MedicineBatch) error {
	args := m.Called(ctx, batch)

	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, id int64) (*entity.MedicineBatch, error) {
	args := m.Called(ctx, id)

	return get[*entity.MedicineBatch](args, 0), args.Error(1)
}

func (m *MockBatchRepository) ListBatches(ctx context.Context, medicineID *int64, page entity.Page) ([]*entity.MedicineBatch, int64, error) {
	args := m.Called(ctx, medicineID, page)

	return get[[]*entity.MedicineBatch](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockBatchRepository) ListAllBatches(ctx context.Context, medicineID *int64) ([]*entity.MedicineBatch, error) {
	args := m.Called(ctx, medicineID)

	return get[[]*entity.MedicineBatch](args, 0), args.Error(1)
}

func (m *MockBatchRepository) UpdateBatch(ctx context.Context, batch *entity.MedicineBatch) error {
	args := m.Called(ctx, batch)

	return args.Error(0)
}

func (m *MockBatchRepository) SoftDeleteBatch(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

// MockGSTSlabRepository is a mock implementation of repository.GSTSlabRepository.
type MockGSTSlabRepository struct {
	mock.Mock
}

// NewMockGSTSlabRepository creates a mock that asserts its expectations when the test ends.
func NewMockGSTSlabRepository(t *testing.T) *MockGSTSlabRepository {
	m := &MockGSTSlabRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGSTSlabRepository) CreateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error {
	args := m.Called(ctx, slab)

	return args.Error(0)
}

func (m *MockGSTSlabRepository) FindGSTSlabByID(ctx context.Context, id int64) (*entity.GSTSlab, error) {
	args := m.Called(ctx, id)

	return get[*entity.GSTSlab](args, 0), args.Error(1)
}

func (m *MockGSTSlabRepository) FindGSTSlabByHSN(ctx context.Context, hsnCode string) (*entity.GSTSlab, error) {
	args := m.Called(ctx, hsnCode)

	return get[*entity.GSTSlab](args, 0), args.Error(1)
}

func (m *MockGSTSlabRepository) ListGSTSlabs(ctx context.Context, page entity.Page) ([]*entity.GSTSlab, int64, error) {
	args := m.Called(ctx, page)

	return get[[]*entity.GSTSlab](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockGSTSlabRepository) UpdateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error {
	args := m.Called(ctx, slab)

	return args.Error(0)
}

func (m *MockGSTSlabRepository) SoftDeleteGSTSlab(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}
