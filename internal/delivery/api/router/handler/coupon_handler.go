package handler

import (
	"log/slog"
	"net/http"
	"time"

	"medico/internal/delivery/api/response"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CouponHandlerParams holds dependencies for CouponHandler, injected by Fx.
type CouponHandlerParams struct {
	fx.In

	CouponUC usecase.CouponUsecase
	Logger   *slog.Logger
}

// CouponHandler serves coupon management and redemption checks.
type CouponHandler struct {
	couponUC usecase.CouponUsecase
	logger   *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler
func NewCouponHandler(params CouponHandlerParams) *CouponHandler {
	return &CouponHandler{
		couponUC: params.CouponUC,
		logger:   params.Logger,
	}
}

// CreateCouponRequest represents the request body for creating a coupon
type CreateCouponRequest struct {
	Code       string    `json:"code" validate:"required,alphanum,max=50"`
	DiscountID int64     `json:"discount_id" validate:"required,gt=0"`
	MaxUsage   *int      `json:"max_usage" validate:"omitempty,gt=0"`
	ValidFrom  time.Time `json:"valid_from" validate:"required"`
	ValidTo    time.Time `json:"valid_to" validate:"required"`
}

// ValidateCouponRequest represents the request body for checking a code
type ValidateCouponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// IncrementUsageRequest represents the request body for recording redemptions
type IncrementUsageRequest struct {
	Count int `json:"count" validate:"required,gt=0"`
}

// QuoteRequest represents the request body for pricing a coupon against a subtotal
type QuoteRequest struct {
	Code     string          `json:"code" validate:"required,max=50"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CreateCoupon handles coupon creation
func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	coupon, err := h.couponUC.CreateCoupon(c.Request().Context(), &usecase.CreateCouponInput{
		Code:       req.Code,
		DiscountID: req.DiscountID,
		MaxUsage:   req.MaxUsage,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, coupon)
}

// ListCoupons handles the paged coupon list
func (h *CouponHandler) ListCoupons(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.couponUC.ListCoupons(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GetCoupon handles retrieving one coupon
func (h *CouponHandler) GetCoupon(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	coupon, err := h.couponUC.GetCoupon(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, coupon)
}

// DeleteCoupon handles soft deleting a coupon
func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.couponUC.DeleteCoupon(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ValidateCoupon reports whether a code can be redeemed now
func (h *CouponHandler) ValidateCoupon(c echo.Context) error {
	var req ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.couponUC.ValidateCoupon(c.Request().Context(), req.Code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// IncrementUsage records redemptions of a coupon
func (h *CouponHandler) IncrementUsage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	req := IncrementUsageRequest{Count: 1}
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid usage input")
		}
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	coupon, err := h.couponUC.IncrementUsage(c.Request().Context(), id, req.Count)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, coupon)
}

// QuoteDiscount prices a coupon against a subtotal without redeeming it
func (h *CouponHandler) QuoteDiscount(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quote input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if req.Subtotal.IsNegative() {
		return response.BadRequest(c, "VALIDATION_ERROR", "subtotal must not be negative")
	}

	quote, err := h.couponUC.QuoteDiscount(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, quote)
}

// CouponQR renders the coupon code as a PNG image
func (h *CouponHandler) CouponQR(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.couponUC.CouponQR(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
