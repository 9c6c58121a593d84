package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// couponService implements the CouponUsecase interface.
type couponService struct {
	repos  repository.RepositoryFactory
	qr     service.QRCodeService
	clock  service.Clock
	logger *slog.Logger
}

// CouponServiceParams holds dependencies for CouponService, injected by Fx.
type CouponServiceParams struct {
	fx.In

	Repos  repository.RepositoryFactory
	QR     service.QRCodeService
	Clock  service.Clock
	Logger *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(params CouponServiceParams) usecase.CouponUsecase {
	return &couponService{
		repos:  params.Repos,
		qr:     params.QR,
		clock:  params.Clock,
		logger: params.Logger,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCoupon binds a new unique code to an existing discount.
func (srv *couponService) CreateCoupon(ctx context.Context, input *usecase.CreateCouponInput) (*entity.Coupon, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("coupon code is required")
	}
	if !input.ValidTo.After(input.ValidFrom) {
		return nil, domainerrors.ErrInvalidDiscountPeriod.WrapMessage("valid_to must be after valid_from")
	}
	if input.MaxUsage != nil && *input.MaxUsage < 1 {
		return nil, domainerrors.ErrValidation.WrapMessage("max_usage must be positive")
	}

	if _, err := srv.repos.DiscountRepo().FindDiscountByID(ctx, input.DiscountID); err != nil {
		return nil, errors.Wrap(err, "failed to find coupon discount")
	}

	couponRepo := srv.repos.CouponRepo()
	_, err := couponRepo.FindCouponByCode(ctx, code)
	switch {
	case err == nil:
		return nil, domainerrors.ErrCouponAlreadyExists.WrapMessage(code)
	case !errors.Is(err, domainerrors.ErrCouponNotFound):
		return nil, err
	}

	coupon := &entity.Coupon{
		Code:       code,
		DiscountID: input.DiscountID,
		MaxUsage:   input.MaxUsage,
		ValidFrom:  input.ValidFrom,
		ValidTo:    input.ValidTo,
	}
	if err := couponRepo.CreateCoupon(ctx, coupon); err != nil {
		return nil, errors.Wrap(err, "failed to create coupon")
	}

	srv.log(ctx).Info("Coupon created", slog.Int64("couponID", coupon.ID), slog.String("code", coupon.Code))

	return coupon, nil
}

func (srv *couponService) GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	return srv.repos.CouponRepo().FindCouponByID(ctx, id)
}

func (srv *couponService) ListCoupons(ctx context.Context, page entity.Page) (*entity.PagedResult[*entity.Coupon], error) {
	coupons, total, err := srv.repos.CouponRepo().ListCoupons(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	return paged(coupons, total), nil
}

func (srv *couponService) DeleteCoupon(ctx context.Context, id, by int64) error {
	if err := srv.repos.CouponRepo().SoftDeleteCoupon(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete coupon")
	}

	srv.log(ctx).Info("Coupon deleted", slog.Int64("couponID", id), slog.Int64("by", by))

	return nil
}

// ValidateCoupon reports the redeemability of code. Unknown codes are a
// result, not an error.
func (srv *couponService) ValidateCoupon(ctx context.Context, code string) (*entity.CouponValidation, error) {
	res, _, err := validateCoupon(ctx, srv.repos.CouponRepo(), code, srv.clock.Now())
	if err != nil {
		return nil, err
	}

	return res, nil
}

func validateCoupon(ctx context.Context, couponRepo repository.CouponRepository, code string, now time.Time) (*entity.CouponValidation, *entity.Coupon, error) {
	coupon, err := couponRepo.FindCouponByCode(ctx, code)
	if errors.Is(err, domainerrors.ErrCouponNotFound) {
		res := entity.InvalidCoupon(code)
		return &res, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find coupon")
	}

	res := coupon.Validate(now)

	return &res, coupon, nil
}

// IncrementUsage records delta redemptions and returns the updated coupon.
func (srv *couponService) IncrementUsage(ctx context.Context, id int64, delta int) (*entity.Coupon, error) {
	couponRepo := srv.repos.CouponRepo()

	if err := couponRepo.IncrementUsage(ctx, id, delta); err != nil {
		return nil, errors.Wrap(err, "failed to increment coupon usage")
	}

	coupon, err := couponRepo.FindCouponByID(ctx, id)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Coupon redeemed",
		slog.Int64("couponID", id),
		slog.Int("delta", delta),
		slog.Int("usedCount", coupon.UsedCount),
	)

	return coupon, nil
}

// QuoteDiscount computes what a valid coupon takes off subtotal.
func (srv *couponService) QuoteDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*entity.DiscountQuote, error) {
	quote, _, err := quoteCoupon(ctx, srv.repos, code, subtotal, srv.clock.Now())
	if err != nil {
		return nil, err
	}

	return quote, nil
}

// quoteCoupon validates code at now and prices its discount against subtotal.
func quoteCoupon(ctx context.Context, repoFactory repository.RepositoryFactory, code string, subtotal decimal.Decimal, now time.Time) (*entity.DiscountQuote, *entity.Coupon, error) {
	if subtotal.IsNegative() {
		return nil, nil, domainerrors.ErrValidation.WrapMessage("subtotal must not be negative")
	}

	validation, coupon, err := validateCoupon(ctx, repoFactory.CouponRepo(), code, now)
	if err != nil {
		return nil, nil, err
	}
	if !validation.Valid {
		return nil, nil, domainerrors.ErrCouponNotApplicable.WrapMessage(validation.Message)
	}

	discount, err := repoFactory.DiscountRepo().FindDiscountByID(ctx, coupon.DiscountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDiscountNotFound) {
			return nil, nil, domainerrors.ErrCouponNotApplicable.WrapMessage("discount no longer exists")
		}

		return nil, nil, err
	}
	if !discount.IsActiveAt(now) {
		return nil, nil, domainerrors.ErrCouponNotApplicable.WrapMessage("discount is not active")
	}

	amount, err := discount.AmountFor(subtotal)
	if err != nil {
		return nil, nil, err
	}

	return &entity.DiscountQuote{
		Code:           coupon.Code,
		CouponID:       coupon.ID,
		DiscountID:     discount.ID,
		Subtotal:       subtotal,
		DiscountAmount: amount,
		Total:          subtotal.Sub(amount),
	}, coupon, nil
}

// CouponQR renders the code of a live coupon as a PNG QR image.
func (srv *couponService) CouponQR(ctx context.Context, id int64) ([]byte, error) {
	coupon, err := srv.repos.CouponRepo().FindCouponByID(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qr.GenerateCouponQR(coupon.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render coupon QR")
	}

	return png, nil
}
