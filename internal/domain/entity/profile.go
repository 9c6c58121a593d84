package entity

import "time"

// ManagementProfile holds the display data of an administrator.
type ManagementProfile struct {
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	ProfilePicID *int64    `json:"profile_pic_id,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerProfile holds the personal data of a customer.
type CustomerProfile struct {
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	BloodGroup   string     `json:"blood_group,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	DateOfBirth  *time.Time `json:"dob,omitempty"`
	AddressID    *int64     `json:"address_id,omitempty"`
	ProfilePicID *int64     `json:"profile_pic_id,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Address is a delivery or billing location of a customer.
type Address struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AddressTypeID int64     `json:"address_type_id"`
	HouseNo       string    `json:"house_no,omitempty"`
	Street        string    `json:"street,omitempty"`
	Locality      string    `json:"locality,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Pincode       string    `json:"pincode"`
	CreatedAt     time.Time `json:"created_at"`
}

// FamilyMember is a dependant a customer can order for.
type FamilyMember struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Email       string     `json:"email,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dob,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProfilePatch carries the optional changes to a profile.
type ProfilePatch struct {
	Name         *string
	PhoneNumber  *string
	BloodGroup   *string
	Gender       *string
	DateOfBirth  *time.Time
	ProfilePicID *int64
	Address      *Address
}

// FamilyMemberPatch carries the optional changes to a family member.
type FamilyMemberPatch struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	Gender      *string
	DateOfBirth *time.Time
}
