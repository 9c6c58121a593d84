package model

import "time"

// LookupModel holds the columns shared by every lookup table. Queries address a
// concrete table with db.Table; the per-table types below exist for migrations.
type LookupModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:,where:is_deleted = false"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SoftDelete
}

type CategoryModel struct{ LookupModel }

func (CategoryModel) TableName() string { return "categories" }

type TagModel struct{ LookupModel }

func (TagModel) TableName() string { return "tags" }

type SideEffectModel struct{ LookupModel }

func (SideEffectModel) TableName() string { return "side_effects" }

type AlternativeModel struct{ LookupModel }

func (AlternativeModel) TableName() string { return "alternatives" }

type DiscountTypeModel struct{ LookupModel }

func (DiscountTypeModel) TableName() string { return "discount_types" }

type IssueCategoryModel struct{ LookupModel }

func (IssueCategoryModel) TableName() string { return "issue_categories" }

type AddressTypeModel struct{ LookupModel }

func (AddressTypeModel) TableName() string { return "address_types" }
