package postgres

import (
	"context"
	"strconv"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// couponRepository implements the domain.CouponRepository interface.
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository is the constructor for couponRepository.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

// CreateCoupon persists a new coupon.
func (repo *couponRepository) CreateCoupon(ctx context.Context, coupon *entity.Coupon) error {
	couponM := fromCouponDomain(coupon)

	if err := repo.db.WithContext(ctx).Create(couponM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrDiscountNotFound.WrapMessage("invalid discount reference")
		}

		return writeError(err, domainerrors.ErrCouponAlreadyExists, "create coupon "+coupon.Code)
	}

	coupon.ID = couponM.ID
	coupon.CreatedAt = couponM.CreatedAt

	return nil
}

// FindCouponByID retrieves a live coupon by its unique ID from the primary,
// so a read right after IncrementUsage sees the new count.
func (repo *couponRepository) FindCouponByID(ctx context.Context, id int64) (*entity.Coupon, error) {
	var couponM model.CouponModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Scopes(live).
		Where("id = ?", id).
		First(&couponM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrCouponNotFound, "find coupon by ID")
	}

	return toCouponDomain(&couponM), nil
}

// FindCouponByCode retrieves a live coupon from the primary so the usage count is current.
func (repo *couponRepository) FindCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var couponM model.CouponModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Scopes(live).
		Where("code = ?", code).
		First(&couponM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrCouponNotFound, "find coupon by code")
	}

	return toCouponDomain(&couponM), nil
}

// ListCoupons returns a page of live coupons, newest first.
func (repo *couponRepository) ListCoupons(ctx context.Context, page entity.Page) ([]*entity.Coupon, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.CouponModel{}).Scopes(live).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count coupons")
	}

	var couponModels []model.CouponModel
	err := repo.db.WithContext(ctx).Scopes(live, paginate(page)).
		Order("id DESC").
		Find(&couponModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(couponModels))
	for i := range couponModels {
		coupons = append(coupons, toCouponDomain(&couponModels[i]))
	}

	return coupons, total, nil
}

// SoftDeleteCoupon flags a coupon as deleted, freeing its code for reuse.
func (repo *couponRepository) SoftDeleteCoupon(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.CouponModel{}.TableName(), id, deletedBy, domainerrors.ErrCouponNotFound)
}

// IncrementUsage adds delta to used_count in a single conditional UPDATE, so
// concurrent redemptions can never push the count past max_usage.
func (repo *couponRepository) IncrementUsage(ctx context.Context, id int64, delta int) error {
	if delta < 1 {
		return domainerrors.ErrInvalidCouponUsageIncrement.WrapMessage(strconv.Itoa(delta))
	}

	result := repo.db.WithContext(ctx).Model(&model.CouponModel{}).
		Scopes(live).
		Where("id = ?", id).
		Where("max_usage IS NULL OR used_count + ? <= max_usage", delta).
		Update("used_count", gorm.Expr("used_count + ?", delta))
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrCouponUsageLimitReached
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment coupon usage")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Nothing matched: either the coupon is gone or it is exhausted.
	var count int64
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&model.CouponModel{}).
		Scopes(live).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check coupon")
	}
	if count == 0 {
		return domainerrors.ErrCouponNotFound.WrapMessage("increment coupon usage")
	}

	return domainerrors.ErrCouponUsageLimitReached
}

// --- Mapper Functions ---

// toCouponDomain converts a GORM CouponModel to a domain Coupon entity.
func toCouponDomain(data *model.CouponModel) *entity.Coupon {
	if data == nil {
		return nil
	}

	return &entity.Coupon{
		ID:         data.ID,
		Code:       data.Code,
		DiscountID: data.DiscountID,
		MaxUsage:   data.MaxUsage,
		UsedCount:  data.UsedCount,
		ValidFrom:  data.ValidFrom,
		ValidTo:    data.ValidTo,
		CreatedAt:  data.CreatedAt,
	}
}

// fromCouponDomain converts a domain Coupon entity to a GORM CouponModel.
func fromCouponDomain(data *entity.Coupon) *model.CouponModel {
	if data == nil {
		return nil
	}

	return &model.CouponModel{
		ID:         data.ID,
		Code:       data.Code,
		DiscountID: data.DiscountID,
		MaxUsage:   data.MaxUsage,
		UsedCount:  data.UsedCount,
		ValidFrom:  data.ValidFrom,
		ValidTo:    data.ValidTo,
		CreatedAt:  data.CreatedAt,
	}
}
