package mockrepository

import (
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockDiscountRepository is a mock implementation of repository.DiscountRepository.
type MockDiscountRepository struct {
	mock.Mock
}

// NewMockDiscountRepository creates a mock that asserts its expectations when the test ends.
func NewMockDiscountRepository(t *testing.T) *MockDiscountRepository {
	m := &MockDiscountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDiscountRepository) CreateDiscount(ctx context.Context, discount *entity.Discount) error {
	args := m.Called(ctx, discount)

	return args.Error(0)
}

func (m *MockDiscountRepository) FindDiscountByID(ctx context.Context, id int64) (*entity.Discount, error) {
	args := m.Called(ctx, id)

	return get[*entity.Discount](args, 0), args.Error(1)
}

func (m *MockDiscountRepository) ListDiscounts(ctx context.Context, active *bool, now time.Time, page entity.Page) ([]*entity.Discount, int64, error) {
	args := m.Called(ctx, active, now, page)

	return get[[]*entity.Discount](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockDiscountRepository) UpdateDiscount(ctx context.Context, discount *entity.Discount) error {
	args := m.Called(ctx, discount)

	return args.Error(0)
}

func (m *MockDiscountRepository) SoftDeleteDiscount(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) ReplaceParameters(ctx context.Context, discountID int64, params []entity.DiscountParameter, deletedBy int64) error {
	args := m.Called(ctx, discountID, params, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) ReplaceMedicines(ctx context.Context, discountID int64, medicineIDs []int64, deletedBy int64) error {
	args := m.Called(ctx, discountID, medicineIDs, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) ReplaceCategories(ctx context.Context, discountID int64, categoryIDs []int64, deletedBy int64) error {
	args := m.Called(ctx, discountID, categoryIDs, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) AssignMedicines(ctx context.Context, discountID int64, medicineIDs []int64) error {
	args := m.Called(ctx, discountID, medicineIDs)

	return args.Error(0)
}

func (m *MockDiscountRepository) AssignCategories(ctx context.Context, discountID int64, categoryIDs []int64) error {
	args := m.Called(ctx, discountID, categoryIDs)

	return args.Error(0)
}

func (m *MockDiscountRepository) RemoveMedicine(ctx context.Context, discountID int64, medicineID int64, deletedBy int64) error {
	args := m.Called(ctx, discountID, medicineID, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) RemoveCategory(ctx context.Context, discountID int64, categoryID int64, deletedBy int64) error {
	args := m.Called(ctx, discountID, categoryID, deletedBy)

	return args.Error(0)
}

func (m *MockDiscountRepository) ListParameters(ctx context.Context, discountID int64) ([]entity.DiscountParameter, error) {
	args := m.Called(ctx, discountID)

	return get[[]entity.DiscountParameter](args, 0), args.Error(1)
}

func (m *MockDiscountRepository) FindParameter(ctx context.Context, discountID int64, parameterID int64) (*entity.DiscountParameter, error) {
	args := m.Called(ctx, discountID, parameterID)

	return get[*entity.DiscountParameter](args, 0), args.Error(1)
}

func (m *MockDiscountRepository) CreateParameter(ctx context.Context, param *entity.DiscountParameter) error {
	args := m.Called(ctx, param)

	return args.Error(0)
}

func (m *MockDiscountRepository) UpdateParameter(ctx context.Context, param *entity.DiscountParameter) error {
	args := m.Called(ctx, param)

	return args.Error(0)
}

func (m *MockDiscountRepository) SoftDeleteParameter(ctx context.Context, discountID int64, parameterID int64, deletedBy int64) error {
	args := m.Called(ctx, discountID, parameterID, deletedBy)

	return args.Error(0)
}

// MockCouponRepository is a mock implementation of repository.CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

// NewMockCouponRepository creates a mock that asserts its expectations when the test ends.
func NewMockCouponRepository(t *testing.T) *MockCouponRepository {
	m := &MockCouponRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCouponRepository) CreateCoupon(ctx context.Context, coupon *entity.Coupon) error {
	args := m.Called(ctx, coupon)

	return args.Error(0)
}

func (m *MockCouponRepository) FindCouponByID(ctx context.Context, id int64) (*entity.Coupon, error) {
	args := m.Called(ctx, id)

	return get[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) FindCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	args := m.Called(ctx, code)

	return get[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) ListCoupons(ctx context.Context, page entity.Page) ([]*entity.Coupon, int64, error) {
	args := m.Called(ctx, page)

	return get[[]*entity.Coupon](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockCouponRepository) SoftDeleteCoupon(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)

	return args.Error(0)
}
