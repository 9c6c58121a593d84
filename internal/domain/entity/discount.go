package entity

import (
	"strings"
	"time"

	domainerrors "medico/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// Discount type names that change how the value is applied.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

var hundred = decimal.NewFromInt(100)

// Discount is a time-bound price reduction that can target medicines and categories.
type Discount struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	DiscountTypeID    int64               `json:"discount_type_id"`
	DiscountTypeName  string              `json:"discount_type,omitempty"`
	Value             decimal.Decimal     `json:"value"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           time.Time           `json:"end_date"`
	MinPurchaseAmount decimal.Decimal     `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal    `json:"max_discount_amount,omitempty"`
	UsageLimit        *int                `json:"usage_limit,omitempty"`
	Parameters        []DiscountParameter `json:"parameters"`
	MedicineIDs       []int64             `json:"medicine_ids"`
	CategoryIDs       []int64             `json:"category_ids"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         *time.Time          `json:"updated_at,omitempty"`
}

// ValidateDiscountPeriod requires the window end to be strictly after its start.
func ValidateDiscountPeriod(start, end time.Time) error {
	if !end.After(start) {
		return domainerrors.ErrInvalidDiscountPeriod
	}

	return nil
}

// IsActiveAt reports whether t falls inside the inclusive discount window.
func (d *Discount) IsActiveAt(t time.Time) bool {
	return !t.Before(d.StartDate) && !t.After(d.EndDate)
}

// IsPercentage reports whether the value is a percentage of the purchase.
func (d *Discount) IsPercentage() bool {
	return strings.EqualFold(d.DiscountTypeName, DiscountTypePercentage)
}

// AmountFor computes the reduction for a purchase subtotal. The result never
// exceeds the configured cap nor the subtotal itself and is rounded to cents.
func (d *Discount) AmountFor(subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.LessThan(d.MinPurchaseAmount) {
		return decimal.Zero, domainerrors.ErrMinimumPurchaseNotMet
	}

	amount := d.Value
	if d.IsPercentage() {
		amount = subtotal.Mul(d.Value).Div(hundred)
	}
	if d.MaxDiscountAmount != nil && amount.GreaterThan(*d.MaxDiscountAmount) {
		amount = *d.MaxDiscountAmount
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return amount.Round(2), nil
}

// DiscountParameter is a free-form key/value setting attached to a discount.
type DiscountParameter struct {
	ID         int64  `json:"id"`
	DiscountID int64  `json:"discount_id"`
	Key        string `json:"param_key"`
	Value      string `json:"param_value"`
}

// DiscountPatch carries the optional changes of an update. A nil field is left
// untouched, a non-nil slice replaces the whole association set.
type DiscountPatch struct {
	Name              *string
	Description       *string
	DiscountTypeID    *int64
	Value             *decimal.Decimal
	StartDate         *time.Time
	EndDate           *time.Time
	MinPurchaseAmount *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	UsageLimit        *int
	CategoryIDs       *[]int64
	MedicineIDs       *[]int64
	Parameters        *[]DiscountParameter
}

// Apply copies the scalar parts of the patch onto d.
func (p *DiscountPatch) Apply(d *Discount) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DiscountTypeID != nil {
		d.DiscountTypeID = *p.DiscountTypeID
	}
	if p.Value != nil {
		d.Value = *p.Value
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
	if p.MinPurchaseAmount != nil {
		d.MinPurchaseAmount = *p.MinPurchaseAmount
	}
	if p.MaxDiscountAmount != nil {
		d.MaxDiscountAmount = p.MaxDiscountAmount
	}
	if p.UsageLimit != nil {
		d.UsageLimit = p.UsageLimit
	}
}
