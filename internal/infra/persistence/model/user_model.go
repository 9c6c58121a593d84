package model

import "time"

// UserModel mirrors the 'users' table. Email and phone are nullable but unique when present.
type UserModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber  *string `gorm:"type:varchar(20);uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(255)"`
	RoleID       int64   `gorm:"not null;index"`
	IsActive     bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SoftDelete

	Role *RoleModel `gorm:"foreignKey:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex:idx_roles_name_active,where:is_deleted = false"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SoftDelete

	Permissions []PermissionModel `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// PermissionModel mirrors the 'permissions' table.
type PermissionModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (PermissionModel) TableName() string {
	return "permissions"
}

// RolePermissionModel mirrors the 'role_permissions' join table.
type RolePermissionModel struct {
	RoleID       int64 `gorm:"primaryKey"`
	PermissionID int64 `gorm:"primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}
