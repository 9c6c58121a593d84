package usecase

import (
	"context"

	"medico/internal/domain/entity"
)

// CreateRoleInput defines a new role and the names of its permissions.
type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// RoleUsecase defines the management of roles and their permissions.
type RoleUsecase interface {
	CreateRole(ctx context.Context, input *CreateRoleInput) (*entity.Role, error)
	GetRole(ctx context.Context, id int64) (*entity.Role, error)
	ListRoles(ctx context.Context) ([]*entity.Role, error)
	// UpdateRole patches a role. Non-nil permissions replace the whole set.
	UpdateRole(ctx context.Context, id int64, patch *entity.RolePatch) (*entity.Role, error)
}
