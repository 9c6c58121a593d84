package repository

import (
	"context"
	"time"

	"medico/internal/domain/entity"
)

// DiscountRepository defines the persistence of discounts, their parameters and
// their medicine and category associations.
type DiscountRepository interface {
	// CreateDiscount persists the discount row only.
	CreateDiscount(ctx context.Context, discount *entity.Discount) error

	// FindDiscountByID retrieves a discount with its type name, live parameters and associations.
	FindDiscountByID(ctx context.Context, id int64) (*entity.Discount, error)

	// ListDiscounts returns a page of discounts. A non-nil active selects discounts whose
	// window does (true) or does not (false) contain now.
	ListDiscounts(ctx context.Context, active *bool, now time.Time, page entity.Page) ([]*entity.Discount, int64, error)

	// UpdateDiscount saves the scalar fields and updated_at of a discount.
	UpdateDiscount(ctx context.Context, discount *entity.Discount) error

	// SoftDeleteDiscount flags a discount as deleted.
	SoftDeleteDiscount(ctx context.Context, id, deletedBy int64) error

	// ReplaceParameters soft-deletes the live parameters and inserts params fresh.
	ReplaceParameters(ctx context.Context, discountID int64, params []entity.DiscountParameter, deletedBy int64) error

	// ReplaceMedicines soft-deletes the live medicine associations and inserts medicineIDs fresh.
	ReplaceMedicines(ctx context.Context, discountID int64, medicineIDs []int64, deletedBy int64) error

	// ReplaceCategories soft-deletes the live category associations and inserts categoryIDs fresh.
	ReplaceCategories(ctx context.Context, discountID int64, categoryIDs []int64, deletedBy int64) error

	// AssignMedicines links medicines idempotently: live links are kept, deleted links
	// are reactivated and missing links are inserted.
	AssignMedicines(ctx context.Context, discountID int64, medicineIDs []int64) error

	// AssignCategories links categories with the same rules as AssignMedicines.
	AssignCategories(ctx context.Context, discountID int64, categoryIDs []int64) error

	// RemoveMedicine soft-deletes the live association. Returns ErrRelationNotFound when there is none.
	RemoveMedicine(ctx context.Context, discountID, medicineID, deletedBy int64) error

	// RemoveCategory soft-deletes the live association. Returns ErrRelationNotFound when there is none.
	RemoveCategory(ctx context.Context, discountID, categoryID, deletedBy int64) error

	ListParameters(ctx context.Context, discountID int64) ([]entity.DiscountParameter, error)
	FindParameter(ctx context.Context, discountID, parameterID int64) (*entity.DiscountParameter, error)
	CreateParameter(ctx context.Context, param *entity.DiscountParameter) error
	UpdateParameter(ctx context.Context, param *entity.DiscountParameter) error
	SoftDeleteParameter(ctx context.Context, discountID, parameterID, deletedBy int64) error
}

// CouponRepository defines the persistence of coupons.
type CouponRepository interface {
	// CreateCoupon persists a coupon. Returns ErrCouponAlreadyExists when the code is taken.
	CreateCoupon(ctx context.Context, coupon *entity.Coupon) error

	FindCouponByID(ctx context.Context, id int64) (*entity.Coupon, error)

	// FindCouponByCode retrieves a live coupon by code. Always reads from the primary.
	FindCouponByCode(ctx context.Context, code string) (*entity.Coupon, error)

	ListCoupons(ctx context.Context, page entity.Page) ([]*entity.Coupon, int64, error)

	SoftDeleteCoupon(ctx context.Context, id, deletedBy int64) error

	// IncrementUsage atomically adds delta to used_count unless that would exceed max_usage.
	// Returns ErrCouponNotFound or ErrCouponUsageLimitReached.
	IncrementUsage(ctx context.Context, id int64, delta int) error
}
