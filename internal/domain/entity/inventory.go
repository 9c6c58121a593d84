package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a sellable product. Stock lives in its batches.
type Medicine struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	GenericName    string    `json:"generic_name,omitempty"`
	Manufacturer   string    `json:"manufacturer,omitempty"`
	Description    string    `json:"description,omitempty"`
	HSNCode        string    `json:"hsn_code,omitempty"`
	IsPrescribed   bool      `json:"is_prescribed"`
	Weight         float64   `json:"weight,omitempty"`
	ImageAssetID   *int64    `json:"image_asset_id,omitempty"`
	CategoryIDs    []int64   `json:"category_ids"`
	TagIDs         []int64   `json:"tag_ids"`
	SideEffectIDs  []int64   `json:"side_effect_ids"`
	AlternativeIDs []int64   `json:"alternative_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MedicineFilter narrows a medicine listing. Zero values mean no filter.
type MedicineFilter struct {
	Name       string
	CategoryID int64
	TagID      int64
}

// MedicineBatch is a received lot of a medicine with its own price and expiry.
type MedicineBatch struct {
	ID            int64           `json:"id"`
	MedicineID    int64           `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name,omitempty"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsExpired reports whether the batch is past its expiry date at now.
func (b *MedicineBatch) IsExpired(now time.Time) bool {
	return now.After(b.ExpiryDate)
}

// GSTSlab maps an HSN code to its goods and services tax rate in percent.
type GSTSlab struct {
	ID          int64           `json:"id"`
	HSNCode     string          `json:"hsn_code"`
	Description string          `json:"description,omitempty"`
	Rate        decimal.Decimal `json:"rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MedicinePatch carries the optional changes to a medicine. A non-nil link
// slice replaces the whole link set.
type MedicinePatch struct {
	Name           *string
	GenericName    *string
	Manufacturer   *string
	Description    *string
	HSNCode        *string
	IsPrescribed   *bool
	Weight         *float64
	ImageAssetID   *int64
	CategoryIDs    *[]int64
	TagIDs         *[]int64
	SideEffectIDs  *[]int64
	AlternativeIDs *[]int64
}

// Apply copies the scalar parts of the patch onto m.
func (p *MedicinePatch) Apply(m *Medicine) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.GenericName != nil {
		m.GenericName = *p.GenericName
	}
	if p.Manufacturer != nil {
		m.Manufacturer = *p.Manufacturer
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.HSNCode != nil {
		m.HSNCode = *p.HSNCode
	}
	if p.IsPrescribed != nil {
		m.IsPrescribed = *p.IsPrescribed
	}
	if p.Weight != nil {
		m.Weight = *p.Weight
	}
	if p.ImageAssetID != nil {
		m.ImageAssetID = p.ImageAssetID
	}
}

// BatchPatch carries the optional changes to a medicine batch.
type BatchPatch struct {
	BatchNumber   *string
	ExpiryDate    *time.Time
	Quantity      *int
	PurchasePrice *decimal.Decimal
	SellingPrice  *decimal.Decimal
}

// Apply copies the patch onto b.
func (p *BatchPatch) Apply(b *MedicineBatch) {
	if p.BatchNumber != nil {
		b.BatchNumber = *p.BatchNumber
	}
	if p.ExpiryDate != nil {
		b.ExpiryDate = *p.ExpiryDate
	}
	if p.Quantity != nil {
		b.Quantity = *p.Quantity
	}
	if p.PurchasePrice != nil {
		b.PurchasePrice = *p.PurchasePrice
	}
	if p.SellingPrice != nil {
		b.SellingPrice = *p.SellingPrice
	}
}

// GSTSlabPatch carries the optional changes to a GST slab.
type GSTSlabPatch struct {
	HSNCode     *string
	Description *string
	Rate        *decimal.Decimal
}

// LookupPatch carries the optional changes to a lookup record.
type LookupPatch struct {
	Name        *string
	Description *string
}
