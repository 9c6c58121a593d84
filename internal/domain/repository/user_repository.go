// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
// Implementations return the errors of the domain errors package so callers can match them with errors.Is.
package repository

import (
	"context"

	"medico/internal/domain/entity"
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// CreateUser persists a new user. Returns ErrUserAlreadyExists on a duplicate email or phone.
	CreateUser(ctx context.Context, user *entity.User) error

	// FindUserByID retrieves a user with its role and permissions.
	FindUserByID(ctx context.Context, id int64) (*entity.User, error)

	// FindUserByEmail retrieves a user with its role and permissions by email.
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindUserByPhone retrieves a user with its role and permissions by phone number.
	FindUserByPhone(ctx context.Context, phone string) (*entity.User, error)

	// UpdatePassword replaces the stored password hash of a user.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// RoleRepository defines the operations for roles and their permissions.
type RoleRepository interface {
	// CreateRole persists a role together with its permission links.
	CreateRole(ctx context.Context, role *entity.Role) error

	// FindRoleByID retrieves a role with its permissions.
	FindRoleByID(ctx context.Context, id int64) (*entity.Role, error)

	// FindRoleByName retrieves a role with its permissions by its unique name.
	FindRoleByName(ctx context.Context, name string) (*entity.Role, error)

	// ListRoles returns every role with its permissions.
	ListRoles(ctx context.Context) ([]*entity.Role, error)

	// UpdateRole saves the name and description of a role.
	UpdateRole(ctx context.Context, role *entity.Role) error

	// ReplacePermissions sets the permission links of a role to exactly permissionIDs.
	ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error

	// FindPermissionsByNames resolves permission names. Returns ErrPermissionNotFound if any is unknown.
	FindPermissionsByNames(ctx context.Context, names []string) ([]entity.Permission, error)
}
