// Package model holds the GORM-specific structs that mirror the database tables.
package model

import "time"

// SoftDelete holds the audit columns of rows that are flagged instead of removed.
type SoftDelete struct {
	IsDeleted bool `gorm:"not null;default:false;index"`
	DeletedAt *time.Time
	DeletedBy *int64
}
