package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountModel mirrors the 'discounts' table.
type DiscountModel struct {
	ID                int64            `gorm:"primaryKey;autoIncrement"`
	Name              string           `gorm:"type:varchar(255);not null"`
	Description       string           `gorm:"type:text"`
	DiscountTypeID    int64            `gorm:"not null;index"`
	Value             decimal.Decimal  `gorm:"type:numeric(18,3);not null"`
	StartDate         time.Time        `gorm:"not null;index"`
	EndDate           time.Time        `gorm:"not null;index"`
	MinPurchaseAmount decimal.Decimal  `gorm:"type:numeric(18,3);not null;default:0"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:numeric(18,3)"`
	UsageLimit        *int
	CreatedAt         time.Time
	UpdatedAt         *time.Time `gorm:"autoUpdateTime:false"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (DiscountModel) TableName() string {
	return "discounts"
}

// DiscountParameterModel mirrors the 'discount_parameters' table.
type DiscountParameterModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	DiscountID int64  `gorm:"not null;index"`
	ParamKey   string `gorm:"type:varchar(50);not null"`
	ParamValue string `gorm:"type:varchar(255);not null"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (DiscountParameterModel) TableName() string {
	return "discount_parameters"
}

// DiscountMedicineModel mirrors the 'discount_medicines' association table.
// Replaced sets leave their old rows flagged, so a pair may appear more than once.
type DiscountMedicineModel struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	DiscountID int64 `gorm:"not null;index"`
	MedicineID int64 `gorm:"not null;index"`
	CreatedAt  time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (DiscountMedicineModel) TableName() string {
	return "discount_medicines"
}

// DiscountCategoryModel mirrors the 'discount_categories' association table.
type DiscountCategoryModel struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	DiscountID int64 `gorm:"not null;index"`
	CategoryID int64 `gorm:"not null;index"`
	CreatedAt  time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (DiscountCategoryModel) TableName() string {
	return "discount_categories"
}

// CouponModel mirrors the 'coupons' table. used_count never exceeds max_usage when it is set.
type CouponModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Code       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_coupons_code_active,where:is_deleted = false"`
	DiscountID int64     `gorm:"not null;index"`
	MaxUsage   *int      `gorm:"check:chk_coupons_max_usage,max_usage IS NULL OR used_count <= max_usage"`
	UsedCount  int       `gorm:"not null;default:0"`
	ValidFrom  time.Time `gorm:"not null"`
	ValidTo    time.Time `gorm:"not null"`
	CreatedAt  time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}
