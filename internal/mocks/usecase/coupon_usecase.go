package mockusecase

import (
	"context"
	"testing"

	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCouponUsecase is a mock implementation of usecase.CouponUsecase.
type MockCouponUsecase struct {
	mock.Mock
}

// NewMockCouponUsecase creates a mock that asserts its expectations when the test ends.
func NewMockCouponUsecase(t *testing.T) *MockCouponUsecase {
	m := &MockCouponUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCouponUsecase) CreateCoupon(ctx context.Context, input *usecase.CreateCouponInput) (*entity.Coupon, error) {
	args := m.Called(ctx, input)

	return get[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	args := m.Called(ctx, id)

	return get[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) ListCoupons(ctx context.Context, page entity.Page) (*entity.PagedResult[*entity.Coupon], error) {
	args := m.Called(ctx, page)

	return get[*entity.PagedResult[*entity.Coupon]](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) DeleteCoupon(ctx context.Context, id, by int64) error {
	return m.Called(ctx, id, by).Error(0)
}

func (m *MockCouponUsecase) ValidateCoupon(ctx context.Context, code string) (*entity.CouponValidation, error) {
	args := m.Called(ctx, code)

	return get[*entity.CouponValidation](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) IncrementUsage(ctx context.Context, id int64, delta int) (*entity.Coupon, error) {
	args := m.Called(ctx, id, delta)

	return get[*entity.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) QuoteDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*entity.DiscountQuote, error) {
	args := m.Called(ctx, code, subtotal)

	return get[*entity.DiscountQuote](args, 0), args.Error(1)
}

func (m *MockCouponUsecase) CouponQR(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)

	return get[[]byte](args, 0), args.Error(1)
}
