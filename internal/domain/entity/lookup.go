package entity

import "time"

// LookupKind names a family of simple reference records that share one shape:
// a unique name plus an optional description.
type LookupKind string

const (
	LookupCategory      LookupKind = "category"
	LookupTag           LookupKind = "tag"
	LookupSideEffect    LookupKind = "side_effect"
	LookupAlternative   LookupKind = "alternative"
	LookupDiscountType  LookupKind = "discount_type"
	LookupIssueCategory LookupKind = "issue_category"
	LookupAddressType   LookupKind = "address_type"
)

// String returns the string representation of the LookupKind.
func (k LookupKind) String() string {
	return string(k)
}

// IsValid checks if the LookupKind is a known value.
func (k LookupKind) IsValid() bool {
	switch k {
	case LookupCategory, LookupTag, LookupSideEffect, LookupAlternative,
		LookupDiscountType, LookupIssueCategory, LookupAddressType:
		return true
	default:
		return false
	}
}

// Lookup is a named reference record such as a medicine category or a discount type.
type Lookup struct {
	ID          int64      `json:"id"`
	Kind        LookupKind `json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
