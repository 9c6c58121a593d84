package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicineModel mirrors the 'medicines' table.
type MedicineModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(255);not null;index"`
	GenericName  string  `gorm:"type:varchar(255)"`
	Manufacturer string  `gorm:"type:varchar(255)"`
	Description  string  `gorm:"type:text"`
	HSNCode      string  `gorm:"column:hsn_code;type:varchar(20);index"`
	IsPrescribed bool    `gorm:"not null;default:false"`
	Weight       float64 `gorm:"type:numeric(10,3)"`
	ImageAssetID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (MedicineModel) TableName() string {
	return "medicines"
}

// MedicineLinkModel holds the columns shared by the medicine link tables. The
// target column name differs per table, so rows are written as maps.
type MedicineLinkModel struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	MedicineID int64 `gorm:"not null;index"`
	CreatedAt  time.Time
	SoftDelete
}

// MedicineCategoryModel mirrors the 'medicine_categories' table.
type MedicineCategoryModel struct {
	MedicineLinkModel
	CategoryID int64 `gorm:"not null;index"`
}

func (MedicineCategoryModel) TableName() string { return "medicine_categories" }

// MedicineTagModel mirrors the 'medicine_tags' table.
type MedicineTagModel struct {
	MedicineLinkModel
	TagID int64 `gorm:"not null;index"`
}

func (MedicineTagModel) TableName() string { return "medicine_tags" }

// MedicineSideEffectModel mirrors the 'medicine_side_effects' table.
type MedicineSideEffectModel struct {
	MedicineLinkModel
	SideEffectID int64 `gorm:"not null;index"`
}

func (MedicineSideEffectModel) TableName() string { return "medicine_side_effects" }

// MedicineAlternativeModel mirrors the 'medicine_alternatives' table.
type MedicineAlternativeModel struct {
	MedicineLinkModel
	AlternativeID int64 `gorm:"not null;index"`
}

func (MedicineAlternativeModel) TableName() string { return "medicine_alternatives" }

// MedicineBatchModel mirrors the 'medicine_batches' table.
type MedicineBatchModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	MedicineID    int64           `gorm:"not null;index"`
	BatchNumber   string          `gorm:"type:varchar(100);not null"`
	ExpiryDate    time.Time       `gorm:"not null;index"`
	Quantity      int             `gorm:"not null;check:chk_medicine_batches_quantity,quantity >= 0"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SoftDelete

	Medicine *MedicineModel `gorm:"foreignKey:MedicineID"`
}

// TableName explicitly sets the table name for GORM.
func (MedicineBatchModel) TableName() string {
	return "medicine_batches"
}

// GSTSlabModel mirrors the 'gst_slabs' table keyed by HSN code.
type GSTSlabModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	HSNCode     string          `gorm:"column:hsn_code;type:varchar(20);not null;uniqueIndex:idx_gst_slabs_hsn_active,where:is_deleted = false"`
	Description string          `gorm:"type:text"`
	Rate        decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (GSTSlabModel) TableName() string {
	return "gst_slabs"
}
