package model

import "time"

// ManagementProfileModel mirrors the 'management_profiles' table. UserID references users.id.
type ManagementProfileModel struct {
	UserID       int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(100)"`
	PhoneNumber  string `gorm:"type:varchar(20)"`
	ProfilePicID *int64
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ManagementProfileModel) TableName() string {
	return "management_profiles"
}

// CustomerProfileModel mirrors the 'customer_profiles' table. UserID references users.id.
type CustomerProfileModel struct {
	UserID       int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(255)"`
	BloodGroup   string `gorm:"type:varchar(5)"`
	Gender       string `gorm:"type:varchar(20)"`
	DateOfBirth  *time.Time
	AddressID    *int64
	ProfilePicID *int64
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	UserID        int64  `gorm:"not null;index"`
	AddressTypeID int64  `gorm:"not null"`
	HouseNo       string `gorm:"type:varchar(50)"`
	Street        string `gorm:"type:varchar(255)"`
	Locality      string `gorm:"type:varchar(255)"`
	City          string `gorm:"type:varchar(100);not null"`
	State         string `gorm:"type:varchar(100);not null"`
	Pincode       string `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}

// FamilyMemberModel mirrors the 'family_members' table.
type FamilyMemberModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null"`
	PhoneNumber string `gorm:"type:varchar(20)"`
	Email       string `gorm:"type:varchar(255)"`
	Gender      string `gorm:"type:varchar(20)"`
	DateOfBirth *time.Time
	CreatedAt   time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (FamilyMemberModel) TableName() string {
	return "family_members"
}
