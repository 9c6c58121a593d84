package usecase

import (
	"context"
	"time"

	"medico/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CreateDiscountInput defines a new discount with its parameters and associations.
type CreateDiscountInput struct {
	Name              string
	Description       string
	DiscountTypeID    int64
	Value             decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	MinPurchaseAmount decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	UsageLimit        *int
	Parameters        []entity.DiscountParameter
	MedicineIDs       []int64
	CategoryIDs       []int64
}

// CreateCouponInput defines a new coupon.
type CreateCouponInput struct {
	Code       string
	DiscountID int64
	MaxUsage   *int
	ValidFrom  time.Time
	ValidTo    time.Time
}

// DiscountUsecase defines the discount engine operations.
type DiscountUsecase interface {
	// CreateDiscount inserts the discount, its parameters and associations in one transaction.
	CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error)
	// UpdateDiscount patches the scalars and replaces each association set that is supplied.
	UpdateDiscount(ctx context.Context, id int64, patch *entity.DiscountPatch, by int64) (*entity.Discount, error)
	// ListDiscounts filters on the window: true for active now, false for outside it, nil for all.
	ListDiscounts(ctx context.Context, active *bool, page entity.Page) (*entity.PagedResult[*entity.Discount], error)
	GetDiscount(ctx context.Context, id int64) (*entity.Discount, error)
	DeleteDiscount(ctx context.Context, id, by int64) error

	ListParameters(ctx context.Context, discountID int64) ([]entity.DiscountParameter, error)
	AddParameter(ctx context.Context, discountID int64, key, value string) (*entity.DiscountParameter, error)
	UpdateParameter(ctx context.Context, discountID, parameterID int64, key, value *string) (*entity.DiscountParameter, error)
	DeleteParameter(ctx context.Context, discountID, parameterID, by int64) error

	// AssignMedicines links medicines idempotently.
	AssignMedicines(ctx context.Context, discountID int64, medicineIDs []int64) (*entity.Discount, error)
	// AssignCategories links categories idempotently.
	AssignCategories(ctx context.Context, discountID int64, categoryIDs []int64) (*entity.Discount, error)
	RemoveMedicine(ctx context.Context, discountID, medicineID, by int64) error
	RemoveCategory(ctx context.Context, discountID, categoryID, by int64) error
}

// CouponUsecase defines the coupon validator operations.
type CouponUsecase interface {
	CreateCoupon(ctx context.Context, input *CreateCouponInput) (*entity.Coupon, error)
	GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error)
	ListCoupons(ctx context.Context, page entity.Page) (*entity.PagedResult[*entity.Coupon], error)
	DeleteCoupon(ctx context.Context, id, by int64) error

	// ValidateCoupon reports whether a code can be redeemed now. It never writes.
	ValidateCoupon(ctx context.Context, code string) (*entity.CouponValidation, error)
	// IncrementUsage records delta redemptions without ever exceeding the usage limit.
	IncrementUsage(ctx context.Context, id int64, delta int) (*entity.Coupon, error)
	// QuoteDiscount computes the reduction a valid coupon grants on subtotal.
	QuoteDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*entity.DiscountQuote, error)
	// CouponQR renders the coupon code as a PNG QR image.
	CouponQR(ctx context.Context, id int64) ([]byte, error)
}
