package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a redeemable code bound to one discount.
type Coupon struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	DiscountID int64     `json:"discount_id"`
	MaxUsage   *int      `json:"max_usage,omitempty"`
	UsedCount  int       `json:"used_count"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidTo    time.Time `json:"valid_to"`
	CreatedAt  time.Time `json:"created_at"`
}

// CouponStatus is the outcome of validating a coupon code.
type CouponStatus string

const (
	CouponValid     CouponStatus = "valid"
	CouponInvalid   CouponStatus = "invalid"
	CouponExpired   CouponStatus = "expired"
	CouponExhausted CouponStatus = "exhausted"
)

// CouponValidation describes whether a code can be redeemed right now.
type CouponValidation struct {
	Code          string       `json:"code"`
	Status        CouponStatus `json:"status"`
	Valid         bool         `json:"valid"`
	Message       string       `json:"message"`
	CouponID      *int64       `json:"coupon_id,omitempty"`
	DiscountID    *int64       `json:"discount_id,omitempty"`
	RemainingUses *int         `json:"remaining_uses"` // Null means unlimited.
}

// InvalidCoupon is the validation result for an absent or deleted code.
func InvalidCoupon(code string) CouponValidation {
	return CouponValidation{Code: code, Status: CouponInvalid, Message: "Coupon code is invalid"}
}

// Validate evaluates the coupon's window and usage at now. The window is inclusive on both ends.
func (c *Coupon) Validate(now time.Time) CouponValidation {
	res := CouponValidation{
		Code:       c.Code,
		CouponID:   &c.ID,
		DiscountID: &c.DiscountID,
	}

	switch {
	case now.Before(c.ValidFrom) || now.After(c.ValidTo):
		res.Status = CouponExpired
		res.Message = "Coupon is not valid at this time"
	case c.MaxUsage != nil && c.UsedCount >= *c.MaxUsage:
		res.Status = CouponExhausted
		res.Message = "Coupon usage limit reached"
	default:
		res.Status = CouponValid
		res.Valid = true
		res.Message = "Coupon is valid"
		if c.MaxUsage != nil {
			remaining := *c.MaxUsage - c.UsedCount
			res.RemainingUses = &remaining
		}
	}

	return res
}

// DiscountQuote is the reduction a coupon grants on a given subtotal.
type DiscountQuote struct {
	Code           string          `json:"code"`
	CouponID       int64           `json:"coupon_id"`
	DiscountID     int64           `json:"discount_id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}
