package impl

import (
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	mockservice "medico/internal/mocks/service"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type couponFixture struct {
	coupons   *mockrepository.MockCouponRepository
	discounts *mockrepository.MockDiscountRepository
	qr        *mockservice.MockQRCodeService
	service   usecase.CouponUsecase
}

func newCouponFixture(t *testing.T) *couponFixture {
	f := &couponFixture{
		coupons:   mockrepository.NewMockCouponRepository(t),
		discounts: mockrepository.NewMockDiscountRepository(t),
		qr:        mockservice.NewMockQRCodeService(t),
	}
	f.service = NewCouponService(CouponServiceParams{
		Repos:  &mockrepository.Repositories{T: t, Coupon: f.coupons, Discount: f.discounts},
		QR:     f.qr,
		Clock:  fixedClock(),
		Logger: discardLogger(),
	})

	return f
}

func save10(used int) *entity.Coupon {
	return &entity.Coupon{
		ID:         5,
		Code:       "SAVE10",
		DiscountID: 1,
		MaxUsage:   ptr(10),
		UsedCount:  used,
		ValidFrom:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:    time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCouponService_ValidateCoupon(t *testing.T) {
	tests := []struct {
		name          string
		coupon        *entity.Coupon
		findErr       error
		wantStatus    entity.CouponStatus
		wantValid     bool
		wantRemaining *int
	}{
		{name: "valid with uses left", coupon: save10(7), wantStatus: entity.CouponValid, wantValid: true, wantRemaining: ptr(3)},
		{name: "exhausted", coupon: save10(10), wantStatus: entity.CouponExhausted},
		{name: "unknown code", findErr: domainerrors.ErrCouponNotFound, wantStatus: entity.CouponInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCouponFixture(t)
			f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(tt.coupon, tt.findErr).Once()

			res, err := f.service.ValidateCoupon(context.Background(), "SAVE10")

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantRemaining, res.RemainingUses)
		})
	}
}

func TestCouponService_ValidateCoupon_OutsideWindow(t *testing.T) {
	f := newCouponFixture(t)
	coupon := save10(0)
	coupon.ValidTo = testNow.Add(-time.Second)

	f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(coupon, nil).Once()

	res, err := f.service.ValidateCoupon(context.Background(), "SAVE10")

	require.NoError(t, err)
	assert.Equal(t, entity.CouponExpired, res.Status)
	assert.False(t, res.Valid)
}

func TestCouponService_IncrementUsage_LimitReached(t *testing.T) {
	f := newCouponFixture(t)

	f.coupons.On("IncrementUsage", mock.Anything, int64(5), 1).Return(domainerrors.ErrCouponUsageLimitReached).Once()

	_, err := f.service.IncrementUsage(context.Background(), 5, 1)

	assert.True(t, errors.Is(err, domainerrors.ErrCouponUsageLimitReached))
	f.coupons.AssertNotCalled(t, "FindCouponByID", mock.Anything, mock.Anything)
}

func TestCouponService_IncrementUsage_ReturnsUpdatedCoupon(t *testing.T) {
	f := newCouponFixture(t)

	f.coupons.On("IncrementUsage", mock.Anything, int64(5), 2).Return(nil).Once()
	f.coupons.On("FindCouponByID", mock.Anything, int64(5)).Return(save10(9), nil).Once()

	coupon, err := f.service.IncrementUsage(context.Background(), 5, 2)

	require.NoError(t, err)
	assert.Equal(t, 9, coupon.UsedCount)
}

func TestCouponService_QuoteDiscount(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   decimal.Decimal
		wantAmount string
		wantErr    error
	}{
		{name: "percentage of subtotal", subtotal: decimal.NewFromInt(300), wantAmount: "30"},
		{name: "capped at maximum", subtotal: decimal.NewFromInt(1000), wantAmount: "50"},
		{name: "below minimum purchase", subtotal: decimal.NewFromInt(99), wantErr: domainerrors.ErrMinimumPurchaseNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCouponFixture(t)
			f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(save10(3), nil).Once()
			f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(summerSale(), nil).Once()

			quote, err := f.service.QuoteDiscount(context.Background(), "SAVE10", tt.subtotal)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, quote.DiscountAmount.String())
			assert.True(t, quote.Total.Equal(tt.subtotal.Sub(quote.DiscountAmount)))
			assert.Equal(t, int64(5), quote.CouponID)
		})
	}
}

func TestCouponService_QuoteDiscount_ExhaustedCoupon(t *testing.T) {
	f := newCouponFixture(t)

	f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(save10(10), nil).Once()

	_, err := f.service.QuoteDiscount(context.Background(), "SAVE10", decimal.NewFromInt(500))

	assert.True(t, errors.Is(err, domainerrors.ErrCouponNotApplicable))
	f.discounts.AssertNotCalled(t, "FindDiscountByID", mock.Anything, mock.Anything)
}

func TestCouponService_CreateCoupon_DuplicateCode(t *testing.T) {
	f := newCouponFixture(t)

	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(summerSale(), nil).Once()
	f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(save10(0), nil).Once()

	_, err := f.service.CreateCoupon(context.Background(), &usecase.CreateCouponInput{
		Code:       "SAVE10",
		DiscountID: 1,
		ValidFrom:  testNow,
		ValidTo:    testNow.Add(24 * time.Hour),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrCouponAlreadyExists))
}

func TestCouponService_CouponQR(t *testing.T) {
	f := newCouponFixture(t)

	f.coupons.On("FindCouponByID", mock.Anything, int64(5)).Return(save10(0), nil).Once()
	f.qr.On("GenerateCouponQR", "SAVE10").Return([]byte("png"), nil).Once()

	png, err := f.service.CouponQR(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}
